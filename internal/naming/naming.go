// Package naming derives identifiers for generated artifacts.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy selects how NormalizeCase rewrites identifiers.
type Strategy string

const (
	CamelCase Strategy = "camelCase"
	SnakeCase Strategy = "snake_case"
	Original  Strategy = "original"
)

// ParseStrategy validates a strategy name. An empty name means Original.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", Original:
		return Original, nil
	case CamelCase, SnakeCase:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("invalid naming strategy: %s (valid: camelCase, snake_case, original)", s)
	}
}

// NormalizeCase rewrites identifier according to strategy.
func NormalizeCase(identifier string, strategy Strategy) string {
	switch strategy {
	case CamelCase:
		return SnakeToCamel(identifier)
	case SnakeCase:
		return CamelToSnake(identifier)
	default:
		return identifier
	}
}

var (
	separatorRun = regexp.MustCompile(`_+(\w)|-+(\w)`)
	caseBoundary = regexp.MustCompile(`([a-z]|[A-Z0-9]+)([A-Z0-9]|$)`)
)

// SnakeToCamel drops every run of '_' or '-' and upper-cases the character after it.
func SnakeToCamel(s string) string {
	return separatorRun.ReplaceAllStringFunc(s, func(m string) string {
		sub := separatorRun.FindStringSubmatch(m)
		letter := sub[1]
		if letter == "" {
			letter = sub[2]
		}
		return strings.ToUpper(letter)
	})
}

// CamelToSnake inserts '_' at lower-to-upper and upper-run boundaries, then lower-cases.
func CamelToSnake(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range caseBoundary.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(s[last:m[0]])
		b.WriteString(s[m[2]:m[3]])
		if m[5] > m[4] {
			b.WriteByte('_')
			b.WriteString(s[m[4]:m[5]])
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return strings.ToLower(b.String())
}

// UpperCamel camel-cases s and upper-cases its first letter.
func UpperCamel(s string) string {
	c := SnakeToCamel(s)
	if c == "" {
		return c
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

// OperationName derives the generated name of an operation.
// An explicit operation id wins; otherwise the name is built from method and path,
// e.g. GET /pets/{petId} becomes GetPetsPetId.
func OperationName(operationID, path, method string) string {
	if operationID != "" {
		return UpperCamel(strings.ReplaceAll(operationID, ".", ""))
	}
	name := strings.ToLower(method) + normalizePath(path)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.NewReplacer("{", "", "}", "").Replace(name)
	return UpperCamel(name)
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// ReferenceName returns the entity name a reference pointer such as "#/definitions/Pet" points at.
// Pointers into "responses" get the "Response" suffix so they cannot clash with models.
func ReferenceName(ref string) string {
	segments := strings.Split(ref, "/")
	name := unescapePointer(segments[len(segments)-1])
	if len(segments) >= 2 && segments[len(segments)-2] == "responses" {
		return ResponseName(name)
	}
	return name
}

// ResponseName names the definition generated for a reusable response.
func ResponseName(key string) string {
	return key + "Response"
}

func unescapePointer(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}
