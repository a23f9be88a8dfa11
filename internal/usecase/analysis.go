package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

func (r *Registry) registerAnalysisOperations() {
	r.register(Operation{
		Tool: domain.Tool{
			Name:        "advanced_search",
			Description: "Search compounds by property bounds and summarise the result set (per-property statistics, Lipinski compliance)",
			InputSchema: objectSchema(map[string]domain.JSONSchemaProps{
				"min_mw":   numberProp("Minimum molecular weight in Da", fptr(0), nil),
				"max_mw":   numberProp("Maximum molecular weight in Da", fptr(0), nil),
				"min_logp": numberProp("Minimum calculated logP", nil, nil),
				"max_logp": numberProp("Maximum calculated logP", nil, nil),
				"max_hbd":  numberProp("Maximum hydrogen bond donors", fptr(0), nil),
				"max_hba":  numberProp("Maximum hydrogen bond acceptors", fptr(0), nil),
				"limit":    limitProp(),
			}),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParsePropertyFilterArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.advancedSearch(ctx, args)
			}, nil
		},
	})

	r.register(r.calculatorOperation(
		"calculate_descriptors",
		"Report the computed molecular descriptors for a structure",
		func(mol map[string]any, props domain.CompoundProperties) any {
			return descriptorReport{
				ChemblID:    moleculeChemblID(mol),
				Descriptors: props,
			}
		},
	))

	r.register(r.calculatorOperation(
		"predict_admet",
		"Summarise ADMET-relevant properties for a structure (bioavailability, solubility, drug-likeness)",
		func(mol map[string]any, props domain.CompoundProperties) any {
			return admetReport{
				ChemblID:        moleculeChemblID(mol),
				Properties:      props,
				Bioavailability: domain.ScoreBioavailability(props),
				Solubility:      domain.EstimateSolubility(props),
				DrugLikeness:    domain.AssessDrugLikeness(props),
			}
		},
	))

	r.register(r.calculatorOperation(
		"predict_solubility",
		"Estimate aqueous solubility for a structure from its computed properties",
		func(mol map[string]any, props domain.CompoundProperties) any {
			return solubilityReport{
				ChemblID: moleculeChemblID(mol),
				Inputs:   props,
				Estimate: domain.EstimateSolubility(props),
			}
		},
	))

	r.register(r.calculatorOperation(
		"assess_drug_likeness",
		"Assess Lipinski Rule-of-Five compliance and oral bioavailability for a structure",
		func(mol map[string]any, props domain.CompoundProperties) any {
			return drugLikenessReport{
				ChemblID:   moleculeChemblID(mol),
				Assessment: domain.AssessDrugLikeness(props),
			}
		},
	))

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "get_external_references",
			Description: "Aggregate a compound's cross-references to external databases, grouped by category",
			InputSchema: identifierSchema("ChEMBL compound identifier"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseIdentifierArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.externalReferences(ctx, args.ChemblID)
			}, nil
		},
	})
}

type descriptorReport struct {
	SMILES      string                    `json:"smiles"`
	ChemblID    string                    `json:"chembl_id"`
	Descriptors domain.CompoundProperties `json:"descriptors"`
}

type admetReport struct {
	SMILES          string                      `json:"smiles"`
	ChemblID        string                      `json:"chembl_id"`
	Properties      domain.CompoundProperties   `json:"properties"`
	Bioavailability domain.BioavailabilityScore `json:"bioavailability"`
	Solubility      domain.SolubilityEstimate   `json:"solubility"`
	DrugLikeness    domain.DrugLikeness         `json:"drug_likeness"`
}

type solubilityReport struct {
	SMILES   string                    `json:"smiles"`
	ChemblID string                    `json:"chembl_id"`
	Inputs   domain.CompoundProperties `json:"inputs"`
	Estimate domain.SolubilityEstimate `json:"estimate"`
}

type drugLikenessReport struct {
	SMILES     string              `json:"smiles"`
	ChemblID   string              `json:"chembl_id"`
	Assessment domain.DrugLikeness `json:"assessment"`
}

// calculatorOperation builds a SMILES-shaped operation that resolves the
// structure upstream and derives a report from its computed properties.
// The shape functions return one of the report structs above; the SMILES
// field is filled in here.
func (r *Registry) calculatorOperation(name, desc string, shape func(mol map[string]any, props domain.CompoundProperties) any) Operation {
	return Operation{
		Tool: domain.Tool{
			Name:        name,
			Description: desc,
			InputSchema: smilesSchema("SMILES string of the structure"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseSMILESArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				mol, err := r.fetchMoleculeBySMILES(ctx, args.SMILES)
				if err != nil {
					return nil, err
				}
				report := shape(mol, domain.PropertiesFromMolecule(mol))
				switch v := report.(type) {
				case descriptorReport:
					v.SMILES = args.SMILES
					return v, nil
				case admetReport:
					v.SMILES = args.SMILES
					return v, nil
				case solubilityReport:
					v.SMILES = args.SMILES
					return v, nil
				case drugLikenessReport:
					v.SMILES = args.SMILES
					return v, nil
				default:
					return report, nil
				}
			}, nil
		},
	}
}

type advancedSearchResult struct {
	Count     int                    `json:"count"`
	Molecules []any                  `json:"molecules"`
	Analytics domain.SearchAnalytics `json:"analytics"`
}

// advancedSearch translates the property bounds into the upstream
// greater-than/less-than suffixed filter keys, then computes summary
// statistics over the returned set. An empty filter object is valid and
// means "unfiltered".
func (r *Registry) advancedSearch(ctx context.Context, args domain.PropertyFilterArgs) (any, error) {
	q := url.Values{}
	if args.MinMW != nil {
		q.Set("molecule_properties__mw_freebase__gte", formatNumber(*args.MinMW))
	}
	if args.MaxMW != nil {
		q.Set("molecule_properties__mw_freebase__lte", formatNumber(*args.MaxMW))
	}
	if args.MinLogP != nil {
		q.Set("molecule_properties__alogp__gte", formatNumber(*args.MinLogP))
	}
	if args.MaxLogP != nil {
		q.Set("molecule_properties__alogp__lte", formatNumber(*args.MaxLogP))
	}
	if args.MaxHBD != nil {
		q.Set("molecule_properties__hbd__lte", formatNumber(*args.MaxHBD))
	}
	if args.MaxHBA != nil {
		q.Set("molecule_properties__hba__lte", formatNumber(*args.MaxHBA))
	}
	q.Set("limit", strconv.Itoa(args.LimitOrDefault()))

	resp, err := r.client.GetJSON(ctx, chembl.Request{Path: "/molecule.json", Query: q})
	if err != nil {
		return nil, err
	}

	molecules, _ := resp["molecules"].([]any)
	props := make([]domain.CompoundProperties, 0, len(molecules))
	for _, m := range molecules {
		if mol, ok := m.(map[string]any); ok {
			props = append(props, domain.PropertiesFromMolecule(mol))
		}
	}

	return advancedSearchResult{
		Count:     len(molecules),
		Molecules: molecules,
		Analytics: domain.AnalyzeCompounds(props),
	}, nil
}

type referenceReport struct {
	ChemblID string                                `json:"chembl_id"`
	Total    int                                   `json:"total"`
	Groups   map[string][]domain.ExternalReference `json:"groups"`
}

// externalReferences merges cross-reference records from the molecule and
// compound-record endpoints. Both fetches are best-effort: a failed source
// contributes nothing instead of failing the operation.
func (r *Registry) externalReferences(ctx context.Context, chemblID string) (any, error) {
	var refs []domain.ExternalReference

	mol, err := r.client.GetJSON(ctx, chembl.Request{
		Path: fmt.Sprintf("/molecule/%s.json", url.PathEscape(chemblID)),
	})
	if err != nil {
		r.logger.Warn("Molecule cross-reference fetch failed, continuing without it",
			slog.String("chembl_id", chemblID), slog.Any("error", err))
	} else {
		xrefs, _ := mol["cross_references"].([]any)
		for _, x := range xrefs {
			xref, ok := x.(map[string]any)
			if !ok {
				continue
			}
			src, _ := xref["xref_src"].(string)
			id, _ := xref["xref_id"].(string)
			name, _ := xref["xref_name"].(string)
			refs = append(refs, domain.ExternalReference{
				Source: src,
				ID:     id,
				Name:   name,
				URL:    domain.ReferenceURL(src, id),
				Origin: "molecule",
			})
		}
	}

	q := url.Values{}
	q.Set("molecule_chembl_id", chemblID)
	records, err := r.client.GetJSON(ctx, chembl.Request{Path: "/compound_record.json", Query: q})
	if err != nil {
		r.logger.Warn("Compound record fetch failed, continuing without it",
			slog.String("chembl_id", chemblID), slog.Any("error", err))
	} else {
		list, _ := records["compound_records"].([]any)
		for _, c := range list {
			record, ok := c.(map[string]any)
			if !ok {
				continue
			}
			src, _ := record["src_short_name"].(string)
			if src == "" {
				if desc, okDesc := record["src_description"].(string); okDesc {
					src = desc
				}
			}
			key, _ := record["compound_key"].(string)
			refs = append(refs, domain.ExternalReference{
				Source: src,
				ID:     key,
				URL:    domain.ReferenceURL(src, key),
				Origin: "compound_record",
			})
		}
	}

	return referenceReport{
		ChemblID: chemblID,
		Total:    len(refs),
		Groups:   domain.GroupReferences(refs),
	}, nil
}
