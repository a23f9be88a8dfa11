package domain

import (
	"encoding/json"
	"strconv"
)

// CompoundProperties is the subset of ChEMBL's computed molecule properties
// consumed by the derived-property calculators. Any field may be absent
// upstream; absent numeric fields stay nil and are treated as "unknown" by
// the calculators.
type CompoundProperties struct {
	MolecularWeight  *float64 `json:"molecular_weight"`
	ALogP            *float64 `json:"alogp"`
	HBD              *float64 `json:"hbd"`
	HBA              *float64 `json:"hba"`
	PSA              *float64 `json:"psa"`
	RotatableBonds   *float64 `json:"rotatable_bonds"`
	AromaticRings    *float64 `json:"aromatic_rings"`
	HeavyAtoms       *float64 `json:"heavy_atoms"`
	NumRo5Violations *float64 `json:"num_ro5_violations"`
	Ro3Pass          *string  `json:"ro3_pass"`
}

// PropertiesFromMolecule extracts CompoundProperties from a decoded upstream
// molecule record. The upstream API serialises numeric properties
// inconsistently (numbers or numeric strings), so both forms are accepted.
func PropertiesFromMolecule(mol map[string]any) CompoundProperties {
	props, _ := mol["molecule_properties"].(map[string]any)
	return CompoundProperties{
		MolecularWeight:  numField(props, "full_mwt"),
		ALogP:            numField(props, "alogp"),
		HBD:              numField(props, "hbd"),
		HBA:              numField(props, "hba"),
		PSA:              numField(props, "psa"),
		RotatableBonds:   numField(props, "rtb"),
		AromaticRings:    numField(props, "aromatic_rings"),
		HeavyAtoms:       numField(props, "heavy_atoms"),
		NumRo5Violations: numField(props, "num_ro5_violations"),
		Ro3Pass:          strField(props, "ro3_pass"),
	}
}

func numField(m map[string]any, key string) *float64 {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func strField(m map[string]any, key string) *string {
	if m == nil {
		return nil
	}
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

// orZero treats a missing numeric property as non-contributing in additive
// formulas. Display paths must not use this; they report "Unknown" instead.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
