package golang

import (
	"strings"
	"text/template"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
)

// toSchema converts any schema value from templates. Nil pointers yield false.
func toSchema(s any) (model.TypedSchema, bool) {
	switch v := s.(type) {
	case model.TypedSchema:
		return v, true
	case *model.TypedSchema:
		if v == nil {
			return model.TypedSchema{}, false
		}
		return *v, true
	default:
		return model.TypedSchema{}, false
	}
}

// TemplateFuncs returns the helpers of the Go stub templates. Wire keys of struct fields are
// rewritten with strategy.
func TemplateFuncs(strategy naming.Strategy) template.FuncMap {
	return template.FuncMap{
		"goName":      ToGoIdentifier,
		"goType":      goTypeAny,
		"goFieldType": goFieldTypeAny,
		"goFields": func(s any, qualifier string, required bool) []Field {
			schema, ok := toSchema(s)
			if !ok {
				return nil
			}
			return Fields(schema, qualifier, strategy, required)
		},
		"isStruct":    isStructAny,
		"isEnum":      isEnumAny,
		"enumConsts":  enumConstsAny,
		"needsTime":   needsTimeAny,
		"goComment":   GoComment,
		"urlExpr":     URLExpr,
		"lower":       strings.ToLower,
		"upper":       strings.ToUpper,
		"join":        strings.Join,
		"dict":        Dict,
	}
}

func goTypeAny(s any, qualifier string) string {
	schema, ok := toSchema(s)
	if !ok {
		return "any"
	}
	return GoType(schema, qualifier)
}

func goFieldTypeAny(s any, qualifier string) string {
	schema, ok := toSchema(s)
	if !ok {
		return "any"
	}
	return FieldType(schema, qualifier)
}

func isStructAny(s any) bool {
	schema, ok := toSchema(s)
	return ok && IsStruct(schema)
}

func isEnumAny(s any) bool {
	schema, ok := toSchema(s)
	return ok && len(schema.Enum) > 0
}

func enumConstsAny(typeName string, s any) []EnumConst {
	schema, ok := toSchema(s)
	if !ok {
		return nil
	}
	return EnumConsts(typeName, schema)
}

func needsTimeAny(s any) bool {
	schema, ok := toSchema(s)
	return ok && NeedsTimeImport(schema)
}

// IsStruct reports whether a definition is declared as a named struct.
func IsStruct(s model.TypedSchema) bool {
	return !s.IsArray && !s.IsRef && len(s.Enum) == 0 && len(s.Properties) > 0
}

// Dict creates a map from key-value pairs for use in templates.
func Dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		return nil
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			continue
		}
		dict[key] = values[i+1]
	}
	return dict
}

func GoComment(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var result strings.Builder
	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			result.WriteString("//")
			continue
		}
		result.WriteString("// ")
		result.WriteString(line)
	}
	return result.String()
}
