package model

// ParseResult is the complete intermediate form of one document.
// Operations and Definitions follow document order.
type ParseResult struct {
	Info        Info               `json:"info"`
	Operations  []OperationSchema  `json:"operations"`
	Definitions []DefinitionSchema `json:"definitions"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// DefinitionSchema is a named model or a named reusable response.
type DefinitionSchema struct {
	Name   string      `json:"name"`
	Schema TypedSchema `json:"schema"`
}

type Info struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// DefinitionByName returns the definition with the given name.
// Returns nil if the definition is not found.
func (r *ParseResult) DefinitionByName(name string) *DefinitionSchema {
	for i := range r.Definitions {
		if r.Definitions[i].Name == name {
			return &r.Definitions[i]
		}
	}
	return nil
}

// OperationByName returns the first operation with the given name.
func (r *ParseResult) OperationByName(name string) *OperationSchema {
	for i := range r.Operations {
		if r.Operations[i].Name == name {
			return &r.Operations[i]
		}
	}
	return nil
}
