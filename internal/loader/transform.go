package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
	"github.com/kolah/swaggen/internal/swagger"
)

const defaultResponseCode = "200"

type transformer struct {
	doc      *swagger.Document
	warnings []string
}

// Transform builds the intermediate model of a loaded document.
// Loader warnings are carried over into the result.
func Transform(result *Result) (*model.ParseResult, error) {
	parsed, err := Parse(result.Document)
	if err != nil {
		return nil, err
	}
	parsed.Info = result.Info
	parsed.Warnings = append(append([]string{}, result.Warnings...), parsed.Warnings...)
	return parsed, nil
}

// Parse maps every definition, reusable response and operation of doc, in document order.
func Parse(doc *swagger.Document) (*model.ParseResult, error) {
	if doc == nil {
		return nil, &DocumentError{Cause: fmt.Errorf("no document")}
	}
	if doc.Swagger != swagger.SupportedVersion {
		return nil, fmt.Errorf("%w: %q (only %s supported)", ErrUnsupportedVersion, doc.Swagger, swagger.SupportedVersion)
	}

	t := &transformer{doc: doc}
	result := &model.ParseResult{
		Info: model.Info{
			Title:       doc.Info.Title,
			Description: doc.Info.Description,
			Version:     doc.Info.Version,
		},
		Operations:  []model.OperationSchema{},
		Definitions: t.definitions(),
	}

	if doc.Paths != nil {
		for path, item := range doc.Paths.FromOldest() {
			result.Operations = append(result.Operations, t.pathOperations(path, item)...)
		}
	}

	result.Warnings = t.warnings
	return result, nil
}

func (t *transformer) warnf(format string, args ...any) {
	t.warnings = append(t.warnings, fmt.Sprintf(format, args...))
}

func (t *transformer) definitions() []model.DefinitionSchema {
	defs := []model.DefinitionSchema{}

	if t.doc.Definitions != nil {
		for name, schema := range t.doc.Definitions.FromOldest() {
			defs = append(defs, model.DefinitionSchema{
				Name:   name,
				Schema: MapSchema(schema, false),
			})
		}
	}

	if t.doc.Responses != nil {
		for name, resp := range t.doc.Responses.FromOldest() {
			defs = append(defs, model.DefinitionSchema{
				Name:   naming.ResponseName(name),
				Schema: MapSchema(resp.Schema, false),
			})
		}
	}

	return defs
}

func (t *transformer) pathOperations(path string, item *swagger.PathItem) []model.OperationSchema {
	if len(item.Parameters) > 0 {
		t.warnf("path %s: %d path-level parameter(s) ignored", path, len(item.Parameters))
	}
	if item.Operations == nil {
		return nil
	}

	var ops []model.OperationSchema
	for method, op := range item.Operations.FromOldest() {
		upper := strings.ToUpper(method)
		if op.Deprecated {
			t.warnf("skipping deprecated operation %s %s (%s)", upper, path, op.OperationID)
			continue
		}
		ops = append(ops, t.transformOperation(path, model.Method(upper), op))
	}
	return ops
}

func (t *transformer) transformOperation(path string, method model.Method, op *swagger.Operation) model.OperationSchema {
	params := t.resolveParameters(path, method, op.Parameters)

	return model.OperationSchema{
		Name:              naming.OperationName(op.OperationID, path, string(method)),
		OperationID:       op.OperationID,
		Path:              path,
		Method:            method,
		Summary:           op.Summary,
		Description:       op.Description,
		Tags:              op.Tags,
		ContentType:       t.contentType(op),
		PathParameter:     parameterSlot(params, swagger.InPath),
		QueryParameter:    parameterSlot(params, swagger.InQuery),
		BodyParameter:     bodyParameter(params),
		FormDataParameter: parameterSlot(params, swagger.InFormData),
		Response:          t.response(op),
	}
}

func (t *transformer) contentType(op *swagger.Operation) string {
	if len(op.Consumes) > 0 {
		return op.Consumes[0]
	}
	if len(t.doc.Consumes) > 0 {
		return t.doc.Consumes[0]
	}
	return ""
}

// resolveParameters replaces "#/parameters/X" references with the shared definition.
func (t *transformer) resolveParameters(path string, method model.Method, params []*swagger.Parameter) []*swagger.Parameter {
	resolved := make([]*swagger.Parameter, 0, len(params))
	for _, p := range params {
		if p.Ref == "" {
			resolved = append(resolved, p)
			continue
		}
		name, ok := strings.CutPrefix(p.Ref, "#/parameters/")
		var shared *swagger.Parameter
		if ok && t.doc.Parameters != nil {
			shared, _ = t.doc.Parameters.Get(name)
		}
		if shared == nil {
			t.warnf("%s %s: unresolved parameter reference %s", method, path, p.Ref)
			continue
		}
		resolved = append(resolved, shared)
	}
	return resolved
}

func parameterSlot(params []*swagger.Parameter, in string) model.TypedSchema {
	slot := model.ObjectSchema()
	for _, p := range params {
		if p.In != in {
			continue
		}
		slot.Properties = append(slot.Properties, model.Property{
			Name:   p.Name,
			Schema: MapSchema(p.Shape, p.Required),
		})
	}
	return slot
}

func bodyParameter(params []*swagger.Parameter) *model.TypedSchema {
	for _, p := range params {
		if p.In == swagger.InBody {
			body := MapSchema(p.Schema, p.Required)
			return &body
		}
	}
	return nil
}

// response picks the first 2xx response in document order, falling back to "200".
func (t *transformer) response(op *swagger.Operation) model.TypedSchema {
	if op.Responses == nil || op.Responses.Len() == 0 {
		return model.EmptySchema()
	}

	code := defaultResponseCode
	for key := range op.Responses.FromOldest() {
		if n, err := strconv.Atoi(key); err == nil && n >= 200 && n < 300 {
			code = key
			break
		}
	}

	resp, _ := op.Responses.Get(code)
	switch {
	case resp == nil:
		return model.EmptySchema()
	case resp.Ref != "":
		return MapSchema(swagger.RefNode(resp.Ref), false)
	case resp.Schema != nil:
		return MapSchema(resp.Schema, false)
	default:
		return model.EmptySchema()
	}
}
