package golang

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kolah/swaggen/internal/naming"
)

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// URLExpr renders a Go expression that builds path at runtime. Declared path parameters are
// read from recv.PathParams and escaped; undeclared ones are kept literally.
func URLExpr(path string, params any, recv string) string {
	fields := make(map[string]string)
	if schema, ok := toSchema(params); ok {
		for _, f := range Fields(schema, "", naming.Original, true) {
			fields[f.Source] = f.Name
		}
	}

	var parts []string
	literal := ""
	last := 0
	for _, m := range pathParamPattern.FindAllStringSubmatchIndex(path, -1) {
		literal += path[last:m[0]]
		last = m[1]
		field, ok := fields[path[m[2]:m[3]]]
		if !ok {
			literal += path[m[0]:m[1]]
			continue
		}
		if literal != "" {
			parts = append(parts, strconv.Quote(literal))
			literal = ""
		}
		parts = append(parts, fmt.Sprintf("url.PathEscape(fmt.Sprint(%s.PathParams.%s))", recv, field))
	}
	literal += path[last:]
	if literal != "" || len(parts) == 0 {
		parts = append(parts, strconv.Quote(literal))
	}
	return strings.Join(parts, " + ")
}
