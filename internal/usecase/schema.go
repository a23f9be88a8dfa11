package usecase

import "github.com/lighteternal/chembl-mcp-server/internal/domain"

// JSON Schema construction helpers for the tool descriptors. Each shape
// helper mirrors the corresponding parse function in internal/domain.

func fptr(v float64) *float64 { return &v }

func objectSchema(props map[string]domain.JSONSchemaProps, required ...string) domain.JSONSchemaProps {
	return domain.JSONSchemaProps{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringProp(desc string) domain.JSONSchemaProps {
	return domain.JSONSchemaProps{Type: "string", Description: desc}
}

func numberProp(desc string, minimum, maximum *float64) domain.JSONSchemaProps {
	return domain.JSONSchemaProps{Type: "number", Description: desc, Minimum: minimum, Maximum: maximum}
}

func limitProp() domain.JSONSchemaProps {
	p := numberProp("Maximum number of results to return", fptr(1), fptr(1000))
	p.Default = domain.DefaultLimit
	return p
}

func offsetProp() domain.JSONSchemaProps {
	p := numberProp("Result offset for pagination", fptr(0), nil)
	p.Default = domain.DefaultOffset
	return p
}

func querySchema(desc string) domain.JSONSchemaProps {
	return objectSchema(map[string]domain.JSONSchemaProps{
		"query":  stringProp(desc),
		"limit":  limitProp(),
		"offset": offsetProp(),
	}, "query")
}

func identifierSchema(desc string) domain.JSONSchemaProps {
	return objectSchema(map[string]domain.JSONSchemaProps{
		"chembl_id": stringProp(desc),
	}, "chembl_id")
}

func identifierWithLimitSchema(desc string) domain.JSONSchemaProps {
	return objectSchema(map[string]domain.JSONSchemaProps{
		"chembl_id": stringProp(desc),
		"limit":     limitProp(),
	}, "chembl_id")
}

func smilesSchema(desc string) domain.JSONSchemaProps {
	return objectSchema(map[string]domain.JSONSchemaProps{
		"smiles": stringProp(desc),
	}, "smiles")
}

func batchSchema(desc string, maxItems int) domain.JSONSchemaProps {
	one := 1
	items := stringProp("ChEMBL identifier")
	return objectSchema(map[string]domain.JSONSchemaProps{
		"chembl_ids": {
			Type:        "array",
			Description: desc,
			Items:       &items,
			MinItems:    &one,
			MaxItems:    &maxItems,
		},
	}, "chembl_ids")
}
