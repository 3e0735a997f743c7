package typescript

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	pathParamPattern  = regexp.MustCompile(`\{([^}]+)\}`)
)

func (t *Target) funcs() template.FuncMap {
	return template.FuncMap{
		"normalizeCase": t.normalizeCase,
		"propertyKey":   t.propertyKey,
		"definitionDir": t.definitionDir,
		"tsPath":        t.tsPath,
		"isEmpty":       IsEmpty,
		"isInterface":   IsInterface,
		"refTypes":      RefTypes,
		"hasImports":    hasImports,
		"literal":       Literal,
		"tsType":        TSType,
		"identifier":    Identifier,
	}
}

func (t *Target) normalizeCase(s string) string {
	return naming.NormalizeCase(s, t.layout.Naming)
}

// propertyKey normalizes a property name and quotes it when it is not a valid identifier.
func (t *Target) propertyKey(name string) string {
	key := t.normalizeCase(name)
	if identifierPattern.MatchString(key) {
		return key
	}
	return Literal(key)
}

// definitionDir is the module path of the definitions directory as seen from the operations directory.
func (t *Target) definitionDir() string {
	return relativeModule(t.layout.OperationsDir, t.layout.DefinitionsDir)
}

// tsPath renders an operation path as a TypeScript expression. Declared path parameters are
// interpolated from the constructor's pathParameter argument; undeclared ones stay literal.
func (t *Target) tsPath(path string, params model.TypedSchema) string {
	if !pathParamPattern.MatchString(path) {
		return Literal(path)
	}

	var b strings.Builder
	b.WriteByte('`')
	last := 0
	for _, m := range pathParamPattern.FindAllStringSubmatchIndex(path, -1) {
		b.WriteString(escapeTemplateText(path[last:m[0]]))
		name := path[m[2]:m[3]]
		if _, ok := params.Property(name); ok {
			fmt.Fprintf(&b, "${parameters.pathParameter[%s]}", Literal(t.normalizeCase(name)))
		} else {
			b.WriteString(escapeTemplateText(path[m[0]:m[1]]))
		}
		last = m[1]
	}
	b.WriteString(escapeTemplateText(path[last:]))
	b.WriteByte('`')
	return b.String()
}

func escapeTemplateText(s string) string {
	return strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${").Replace(s)
}

// IsEmpty reports whether a slice, map or string is empty. Nil is empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsInterface reports whether a definition is declared as an interface rather than a type alias.
func IsInterface(s model.TypedSchema) bool {
	return !s.IsArray && !s.IsRef && !s.IsNullable && len(s.Enum) == 0 && len(s.Properties) > 0
}

// RefTypes returns the referenced names of a schema or an operation.
func RefTypes(v any) []string {
	switch s := v.(type) {
	case model.TypedSchema:
		return s.RefTypes()
	case *model.TypedSchema:
		if s == nil {
			return nil
		}
		return s.RefTypes()
	case model.OperationSchema:
		return s.RefTypes()
	case *model.OperationSchema:
		return s.RefTypes()
	default:
		return nil
	}
}

func hasImports(s model.TypedSchema, self string) bool {
	for _, name := range s.RefTypes() {
		if Identifier(name) != Identifier(self) {
			return true
		}
	}
	return false
}

// Identifier turns a definition or operation name into a TypeScript identifier that is
// also safe as a module file name. Characters outside [A-Za-z0-9_$] become '_' and a
// leading digit gets a '_' prefix.
func Identifier(name string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
			return r
		default:
			return '_'
		}
	}, name)
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "_" + id
	}
	return id
}

// Literal renders a value as a TypeScript literal.
func Literal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "undefined"
	}
	return string(b)
}

// TSType maps a primitive type name onto a TypeScript type.
func TSType(name string) string {
	switch name {
	case model.TypeArray:
		return "any[]"
	case model.TypeObject:
		return "Record<string, any>"
	default:
		return name
	}
}
