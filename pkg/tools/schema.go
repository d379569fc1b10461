package tools

// JSONSchema is the subset of JSON Schema used to describe tool inputs
type JSONSchema struct {
	Type        string                 `json:"type,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Enum        []interface{}          `json:"enum,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Maximum     *float64               `json:"maximum,omitempty"`
	Description string                 `json:"description,omitempty"`
	Default     interface{}            `json:"default,omitempty"`

	AdditionalProperties interface{} `json:"additionalProperties,omitempty"`
}

// ToolMetadata represents rich metadata for a tool
type ToolMetadata struct {
	Schema    *JSONSchema
	UsageHint string
	Examples  []ToolExample
}

// ToolExample represents an example invocation
type ToolExample struct {
	Description string
	Input       map[string]interface{}
}

// ObjectSchema returns an object schema with the given properties
func ObjectSchema(properties map[string]*JSONSchema, required ...string) *JSONSchema {
	if properties == nil {
		properties = map[string]*JSONSchema{}
	}
	return &JSONSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Bound returns a pointer to v for schema minimum/maximum fields
func Bound(v float64) *float64 {
	return &v
}

// InputSchema returns the tool's input schema, or an empty object schema
// for tools without metadata
func InputSchema(tool Tool) *JSONSchema {
	if ext, ok := tool.(ExtendedTool); ok {
		if meta := ext.Metadata(); meta != nil && meta.Schema != nil {
			return meta.Schema
		}
	}
	return ObjectSchema(nil)
}
