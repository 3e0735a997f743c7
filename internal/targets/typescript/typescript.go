// Package typescript renders request descriptors and model declarations as TypeScript modules.
package typescript

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/targets"
	"github.com/kolah/swaggen/internal/templates"
	embeddedtmpl "github.com/kolah/swaggen/templates"
)

const (
	extension       = ".ts"
	barrelFile      = "index.ts"
	runtimeModule   = "APIRequest"
	runtimeTemplate = "runtime.tmpl"
)

type Target struct {
	layout targets.Layout
}

func New(layout targets.Layout) *Target {
	return &Target{layout: layout}
}

func (t *Target) Name() string {
	return "typescript"
}

func (t *Target) Templates() (fs.FS, error) {
	return fs.Sub(embeddedtmpl.FS, "typescript")
}

func (t *Target) Register(reg *templates.Registry) {
	reg.RegisterHelpers(t.funcs())
}

func (t *Target) Identifier(name string) string {
	return Identifier(name)
}

func (t *Target) FileName(identifier string) string {
	return identifier + extension
}

func (t *Target) BarrelName() string {
	return barrelFile
}

func (t *Target) RenderDefinition(engine templates.Engine, def model.DefinitionSchema) (string, error) {
	return engine.Execute(targets.TemplateDefinition, def)
}

// slot is one constructor parameter of a request class.
type slot struct {
	Field    string
	Schema   model.TypedSchema
	Optional bool
}

type operationData struct {
	Operation   model.OperationSchema
	Slots       []slot
	RuntimePath string
}

func (t *Target) RenderOperation(engine templates.Engine, op model.OperationSchema) (string, error) {
	data := operationData{
		Operation:   op,
		Slots:       slots(op),
		RuntimePath: relativeModule(t.layout.OperationsDir, runtimeModule),
	}
	return engine.Execute(targets.TemplateOperation, data)
}

func slots(op model.OperationSchema) []slot {
	var result []slot
	add := func(field string, s model.TypedSchema) {
		if len(s.Properties) > 0 {
			result = append(result, slot{Field: field, Schema: s})
		}
	}
	add("pathParameter", op.PathParameter)
	add("queryParameter", op.QueryParameter)
	if op.BodyParameter != nil {
		result = append(result, slot{
			Field:    "bodyParameter",
			Schema:   *op.BodyParameter,
			Optional: !op.BodyParameter.IsRequired,
		})
	}
	add("formDataParameter", op.FormDataParameter)
	return result
}

type barrelData struct {
	Group targets.Group
	Names []string
}

func (t *Target) RenderBarrel(engine templates.Engine, group targets.Group, identifiers []string) (string, error) {
	return engine.Execute(targets.TemplateBarrel, barrelData{Group: group, Names: identifiers})
}

// SupportFiles emits the APIRequest interface every request class implements.
func (t *Target) SupportFiles(engine templates.Engine, result *model.ParseResult) ([]targets.File, error) {
	if len(result.Operations) == 0 {
		return nil, nil
	}
	content, err := engine.Execute(runtimeTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("rendering runtime: %w", err)
	}
	return []targets.File{{Path: runtimeModule + extension, Content: content}}, nil
}

// relativeModule returns the module specifier of target (relative to the output root) as seen from dir.
func relativeModule(dir, target string) string {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(target))
	if err != nil {
		rel = target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
