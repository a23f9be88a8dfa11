package domain

// Tool is the protocol-facing description of one gateway operation,
// compliant with the Model Context Protocol (MCP). The inbound adapter
// serialises InputSchema and registers it with the transport library.
type Tool struct {
	// Name is the operation identifier. It MUST be unique within the server.
	Name string `json:"name"`

	// Description is the natural-language explanation advertised to callers.
	Description string `json:"description"`

	// InputSchema declares the argument shape in JSON Schema form. It mirrors
	// the corresponding parse function: a request the schema admits is one
	// the parser accepts.
	InputSchema JSONSchemaProps `json:"input_schema"`
}

// JSONSchemaProps is the subset of JSON Schema used to describe tool
// arguments.
type JSONSchemaProps struct {
	Type        string                     `json:"type,omitempty"`
	Description string                     `json:"description,omitempty"`
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
	Items       *JSONSchemaProps           `json:"items,omitempty"`
	Enum        []any                      `json:"enum,omitempty"`
	Minimum     *float64                   `json:"minimum,omitempty"`
	Maximum     *float64                   `json:"maximum,omitempty"`
	MinItems    *int                       `json:"minItems,omitempty"`
	MaxItems    *int                       `json:"maxItems,omitempty"`
	Default     any                        `json:"default,omitempty"`
}
