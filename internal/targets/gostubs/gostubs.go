// Package gostubs renders request descriptors and models as Go source.
package gostubs

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/kolah/swaggen/internal/golang"
	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/targets"
	"github.com/kolah/swaggen/internal/templates"
	embeddedtmpl "github.com/kolah/swaggen/templates"
)

const (
	extension  = ".go"
	barrelFile = "registry.go"
)

const headerPartial = `// Code generated by swaggen. DO NOT EDIT.

package {{.Package}}`

type Target struct {
	layout targets.Layout
	module string
}

// New creates a Go target. module is the import path of the output root.
func New(layout targets.Layout, module string) *Target {
	return &Target{layout: layout, module: module}
}

func (t *Target) Name() string {
	return "go"
}

func (t *Target) Templates() (fs.FS, error) {
	return fs.Sub(embeddedtmpl.FS, "go")
}

func (t *Target) Register(reg *templates.Registry) {
	reg.RegisterHelpers(golang.TemplateFuncs(t.layout.Naming))
	reg.RegisterPartial("header", headerPartial)
}

func (t *Target) Identifier(name string) string {
	return golang.ToGoIdentifier(name)
}

// FileName returns the snake_case file of an identifier. Names that would clash with the
// barrel or be taken for test files get a _gen suffix.
func (t *Target) FileName(identifier string) string {
	base := golang.SnakeCase(identifier)
	if base+extension == barrelFile || strings.HasSuffix(base, "_test") {
		base += "_gen"
	}
	return base + extension
}

func (t *Target) BarrelName() string {
	return barrelFile
}

func (t *Target) packageName(group targets.Group) string {
	return golang.PackageName(t.layout.Dir(group))
}

type definitionData struct {
	Package string
	Name    string
	Source  string
	Schema  model.TypedSchema
}

func (t *Target) RenderDefinition(engine templates.Engine, def model.DefinitionSchema) (string, error) {
	data := definitionData{
		Package: t.packageName(targets.GroupDefinitions),
		Name:    t.Identifier(def.Name),
		Source:  def.Name,
		Schema:  def.Schema,
	}
	return t.render(engine, targets.TemplateDefinition, data.Name, data)
}

type operationData struct {
	Package       string
	Name          string
	Operation     model.OperationSchema
	ModelsPackage string
	ModelsImport  string
	Qualifier     string
	HasResponse   bool
}

func (t *Target) RenderOperation(engine templates.Engine, op model.OperationSchema) (string, error) {
	models := t.packageName(targets.GroupDefinitions)
	data := operationData{
		Package:       t.packageName(targets.GroupOperations),
		Name:          t.Identifier(op.Name),
		Operation:     op,
		ModelsPackage: models,
		ModelsImport:  importPath(t.module, t.layout.DefinitionsDir),
		Qualifier:     models + ".",
		HasResponse:   op.Response.Type != model.TypeVoid || op.Response.IsRef || op.Response.IsArray,
	}
	return t.render(engine, targets.TemplateOperation, data.Name, data)
}

type barrelData struct {
	Package string
	Group   targets.Group
	Names   []string
}

func (t *Target) RenderBarrel(engine templates.Engine, group targets.Group, identifiers []string) (string, error) {
	data := barrelData{
		Package: t.packageName(group),
		Group:   group,
		Names:   identifiers,
	}
	return t.render(engine, targets.TemplateBarrel, string(group), data)
}

func (t *Target) SupportFiles(templates.Engine, *model.ParseResult) ([]targets.File, error) {
	return nil, nil
}

func (t *Target) render(engine templates.Engine, tmpl, name string, data any) (string, error) {
	content, err := engine.Execute(tmpl, data)
	if err != nil {
		return "", err
	}
	formatted, err := golang.Format(name+extension, []byte(content))
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", name, err)
	}
	return string(formatted), nil
}

func importPath(module, dir string) string {
	dir = strings.Trim(strings.ReplaceAll(dir, "\\", "/"), "/")
	dir = strings.TrimPrefix(dir, "./")
	if dir == "" || dir == "." {
		return module
	}
	return strings.TrimSuffix(module, "/") + "/" + dir
}
