package loader

import (
	"slices"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
	"github.com/kolah/swaggen/internal/swagger"
)

var primitiveTypes = map[string]string{
	"Array":     model.TypeArray,
	"array":     model.TypeArray,
	"List":      model.TypeArray,
	"boolean":   model.TypeBoolean,
	"string":    model.TypeString,
	"int":       model.TypeNumber,
	"float":     model.TypeNumber,
	"number":    model.TypeNumber,
	"long":      model.TypeNumber,
	"short":     model.TypeNumber,
	"char":      model.TypeString,
	"double":    model.TypeNumber,
	"object":    model.TypeAny,
	"integer":   model.TypeNumber,
	"Map":       model.TypeAny,
	"date":      model.TypeString,
	"DateTime":  model.TypeDate,
	"binary":    model.TypeString,
	"ByteArray": model.TypeString,
	"UUID":      model.TypeString,
	"File":      model.TypeAny,
	"Error":     model.TypeError,
}

// PrimitiveType maps a Swagger type and format to a primitive type name.
// Strings carrying a 64-bit integer format are numbers. Unknown types map to any.
func PrimitiveType(typ, format string) string {
	if typ == "string" && (format == "int64" || format == "uint64") {
		return model.TypeNumber
	}
	if t, ok := primitiveTypes[typ]; ok {
		return t
	}
	return model.TypeAny
}

// MapSchema converts a schema node and its children into a TypedSchema.
//
// Only one level of array is kept: for an array of arrays the inner IsArray flag is dropped,
// so [][]string maps like []string.
func MapSchema(node *swagger.SchemaNode, required bool) model.TypedSchema {
	if node == nil {
		return newSchema(model.TypeAny, required, false)
	}

	s := newSchema(PrimitiveType(node.Type, node.Format), required, node.Nullable)

	switch node.Shape() {
	case swagger.ShapeEnum:
		s.Enum = slices.Clone(node.Enum)
	case swagger.ShapeStructural:
		if node.Ref != "" {
			s.IsRef = true
			s.Type = naming.ReferenceName(node.Ref)
		}
		if node.Properties != nil {
			for name, child := range node.Properties.FromOldest() {
				s.Properties = append(s.Properties, model.Property{
					Name:   name,
					Schema: MapSchema(child, slices.Contains(node.Required, name)),
				})
			}
		}
	case swagger.ShapeArray:
		item := MapSchema(node.Items, false)
		s.Type = item.Type
		s.IsRef = item.IsRef
		s.Properties = item.Properties
		s.IsArray = true
	}
	return s
}

func newSchema(typ string, required, nullable bool) model.TypedSchema {
	return model.TypedSchema{
		Type:       typ,
		IsRequired: required,
		IsNullable: nullable,
		Enum:       []any{},
		Properties: model.Properties{},
	}
}
