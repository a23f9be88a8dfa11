package domain

// DrugLikeness is the Lipinski Rule-of-Five assessment. OverallPass follows
// the standard formulation: at most one violation, using the upstream
// violation count. When the count is absent upstream, OverallPass is false
// and NumRo5Violations stays null.
type DrugLikeness struct {
	LipinskiChecks      []RuleCheck          `json:"lipinski_checks"`
	NumRo5Violations    *float64             `json:"num_ro5_violations"`
	OverallPass         bool                 `json:"overall_pass"`
	AdditionalChecks    []RuleCheck          `json:"additional_checks"`
	OralBioavailability BioavailabilityScore `json:"oral_bioavailability"`
}

// AssessDrugLikeness evaluates the four Lipinski thresholds (inclusive),
// reports the PSA and rotatable-bond checks alongside, and attaches the
// six-rule oral bioavailability score.
func AssessDrugLikeness(p CompoundProperties) DrugLikeness {
	lipinski := []RuleCheck{
		inclusiveCheck("molecular_weight", 500, p.MolecularWeight),
		inclusiveCheck("alogp", 5, p.ALogP),
		inclusiveCheck("hbd", 5, p.HBD),
		inclusiveCheck("hba", 10, p.HBA),
	}
	additional := []RuleCheck{
		inclusiveCheck("psa", 140, p.PSA),
		inclusiveCheck("rotatable_bonds", 10, p.RotatableBonds),
	}
	return DrugLikeness{
		LipinskiChecks:      lipinski,
		NumRo5Violations:    p.NumRo5Violations,
		OverallPass:         p.NumRo5Violations != nil && *p.NumRo5Violations <= 1,
		AdditionalChecks:    additional,
		OralBioavailability: ScoreBioavailability(p),
	}
}

func inclusiveCheck(name string, threshold float64, v *float64) RuleCheck {
	return RuleCheck{
		Rule:      name,
		Threshold: threshold,
		Value:     v,
		Pass:      v != nil && *v <= threshold,
	}
}
