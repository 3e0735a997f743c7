package model

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Primitive type names produced by the type mapper.
const (
	TypeArray   = "Array"
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeAny     = "any"
	TypeDate    = "Date"
	TypeError   = "Error"
	TypeVoid    = "void"
	TypeObject  = "object"
)

// TypedSchema is the uniform representation of a model, parameter or response shape.
//
// When IsArray is set, Type, IsRef and Properties describe the element type.
// When IsRef is set, Type holds the derived name of the referenced entity.
// A non-empty Enum implies empty Properties.
type TypedSchema struct {
	Type       string     `json:"type"`
	IsRequired bool       `json:"isRequired"`
	IsNullable bool       `json:"isNullable"`
	IsRef      bool       `json:"isRef"`
	IsArray    bool       `json:"isArray"`
	Enum       []any      `json:"enum"`
	Properties Properties `json:"properties"`
}

type Property struct {
	Name   string
	Schema TypedSchema
}

// Properties keeps child schemas in document order.
type Properties []Property

// Property returns the child schema stored under name.
func (s TypedSchema) Property(name string) (TypedSchema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return TypedSchema{}, false
}

// RefTypes returns the distinct referenced type names of the schema and its properties,
// in first-seen order.
func (s TypedSchema) RefTypes() []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range collectRefs(s) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// MarshalJSON encodes properties as a JSON object preserving order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EmptySchema returns the schema used for absent responses.
func EmptySchema() TypedSchema {
	return TypedSchema{
		Type:       TypeVoid,
		Enum:       []any{},
		Properties: Properties{},
	}
}

// ObjectSchema returns an empty synthetic object used for parameter slots.
func ObjectSchema() TypedSchema {
	return TypedSchema{
		Type:       TypeObject,
		Enum:       []any{},
		Properties: Properties{},
	}
}
