package golang

import (
	"fmt"
	"strings"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
)

// GoType returns the Go type of a schema. Referenced types are prefixed with qualifier,
// e.g. "models." when the reference crosses packages.
func GoType(s model.TypedSchema, qualifier string) string {
	elem := GoElemType(s, qualifier)
	if s.IsArray {
		return "[]" + elem
	}
	return elem
}

// GoElemType is GoType ignoring IsArray.
func GoElemType(s model.TypedSchema, qualifier string) string {
	if s.IsRef {
		return qualifier + ToGoIdentifier(s.Type)
	}

	if len(s.Enum) == 0 && len(s.Properties) > 0 {
		return inlineStruct(s, qualifier)
	}

	return goPrimitiveType(s.Type)
}

func goPrimitiveType(typ string) string {
	switch typ {
	case model.TypeString:
		return "string"
	case model.TypeNumber:
		return "float64"
	case model.TypeBoolean:
		return "bool"
	case model.TypeDate:
		return "time.Time"
	case model.TypeArray:
		return "[]any"
	case model.TypeObject:
		return "map[string]any"
	case model.TypeVoid:
		return "struct{}"
	default:
		return "any"
	}
}

func inlineStruct(s model.TypedSchema, qualifier string) string {
	var b strings.Builder
	b.WriteString("struct {\n")
	for _, f := range Fields(s, qualifier, naming.Original, false) {
		fmt.Fprintf(&b, "%s %s %s\n", f.Name, f.Type, f.Tag)
	}
	b.WriteString("}")
	return b.String()
}

// NeedsPointer reports whether an optional or nullable value is declared as a pointer.
// Slices, maps, interfaces and inline structs never are.
func NeedsPointer(s model.TypedSchema) bool {
	if s.IsRequired && !s.IsNullable {
		return false
	}
	if s.IsArray {
		return false
	}
	if s.IsRef {
		return true
	}
	if len(s.Enum) == 0 && len(s.Properties) > 0 {
		return false
	}
	switch s.Type {
	case model.TypeString, model.TypeNumber, model.TypeBoolean, model.TypeDate:
		return true
	default:
		return false
	}
}

// FieldType is GoType with a pointer for optional values.
func FieldType(s model.TypedSchema, qualifier string) string {
	t := GoType(s, qualifier)
	if NeedsPointer(s) {
		return "*" + t
	}
	return t
}

// Field is one struct field generated from a property.
type Field struct {
	Name   string
	Source string
	Key    string
	Type   string
	Tag    string
}

// Fields returns the struct fields of an object schema, in property order.
// The wire key of each field is the property name rewritten by strategy.
// With required set, every field is treated as required.
func Fields(s model.TypedSchema, qualifier string, strategy naming.Strategy, required bool) []Field {
	sources := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		sources[i] = p.Name
	}
	names := UniqueIdentifiers(sources)

	fields := make([]Field, 0, len(s.Properties))
	for i, p := range s.Properties {
		schema := p.Schema
		if required {
			schema.IsRequired = true
			schema.IsNullable = false
		}
		key := naming.NormalizeCase(p.Name, strategy)
		fields = append(fields, Field{
			Name:   names[i],
			Source: p.Name,
			Key:    key,
			Type:   FieldType(schema, qualifier),
			Tag:    JSONTag(key, schema.IsRequired),
		})
	}
	return fields
}

// NeedsTimeImport reports whether the Go type of s mentions time.Time.
func NeedsTimeImport(s model.TypedSchema) bool {
	if !s.IsRef && s.Type == model.TypeDate {
		return true
	}
	for _, p := range s.Properties {
		if NeedsTimeImport(p.Schema) {
			return true
		}
	}
	return false
}

// EnumConst is one named constant of an enumerated definition.
type EnumConst struct {
	Name  string
	Value string
}

// EnumConsts names the scalar values of an enum after typeName. Values that have no
// Go constant form (null, lists, maps) are skipped.
func EnumConsts(typeName string, s model.TypedSchema) []EnumConst {
	var sources []string
	var values []string
	for _, v := range s.Enum {
		lit, ok := EnumLiteral(s.Type, v)
		if !ok {
			continue
		}
		sources = append(sources, fmt.Sprint(v))
		values = append(values, lit)
	}

	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = typeName + PascalCase(Sanitize(src))
		if names[i] == typeName {
			names[i] = fmt.Sprintf("%sValue%d", typeName, i)
		}
	}
	names = Dedupe(names)

	consts := make([]EnumConst, len(values))
	for i := range values {
		consts[i] = EnumConst{Name: names[i], Value: values[i]}
	}
	return consts
}

// EnumLiteral formats an enum value as a Go constant of the given primitive type.
func EnumLiteral(typ string, v any) (string, bool) {
	switch val := v.(type) {
	case string:
		if typ != model.TypeString {
			return "", false
		}
		return fmt.Sprintf("%q", val), true
	case bool:
		if typ != model.TypeBoolean {
			return "", false
		}
		return fmt.Sprintf("%t", val), true
	case int, int64, uint64, float64:
		if typ != model.TypeNumber {
			return "", false
		}
		return fmt.Sprintf("%v", val), true
	default:
		return "", false
	}
}

func JSONTag(name string, required bool) string {
	if required {
		return fmt.Sprintf("`json:\"%s\"`", name)
	}
	return fmt.Sprintf("`json:\"%s,omitempty\"`", name)
}
