package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

type Engine interface {
	Execute(name string, data any) (string, error)
}

// Registry holds the helpers and partials of one engine. Two engines never share a Registry's state.
type Registry struct {
	funcs    template.FuncMap
	partials map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		funcs:    make(template.FuncMap),
		partials: make(map[string]string),
	}
}

// RegisterHelper makes fn callable from templates as name. A later registration replaces an earlier one.
func (r *Registry) RegisterHelper(name string, fn any) {
	r.funcs[name] = fn
}

func (r *Registry) RegisterHelpers(funcs template.FuncMap) {
	maps.Copy(r.funcs, funcs)
}

// RegisterPartial adds a named template that other templates can include with {{template "name" .}}.
func (r *Registry) RegisterPartial(name, text string) {
	r.partials[name] = text
}

// Funcs returns a copy of the registered helpers.
func (r *Registry) Funcs() template.FuncMap {
	return maps.Clone(r.funcs)
}

type TextTemplateEngine struct {
	templates *template.Template
	registry  *Registry
	embedded  fs.FS
	customDir string
}

// NewEngine parses every .tmpl file of embedded, then the registry partials, then every .tmpl file
// of customDir. Templates are named by their path relative to their root, so a custom file
// replaces the embedded file of the same relative name.
func NewEngine(embedded fs.FS, customDir string, registry *Registry) (*TextTemplateEngine, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	e := &TextTemplateEngine{
		embedded:  embedded,
		customDir: customDir,
		registry:  registry,
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.registry.Funcs())

	err := fs.WalkDir(e.embedded, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(e.embedded, path)
		if err != nil {
			return fmt.Errorf("reading embedded template %s: %w", path, err)
		}
		_, err = e.templates.New(path).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing embedded template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading embedded templates: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(e.registry.partials)) {
		if _, err := e.templates.New(name).Parse(e.registry.partials[name]); err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
	}

	if e.customDir != "" {
		err = filepath.WalkDir(e.customDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading custom template %s: %w", path, err)
			}
			relPath, _ := filepath.Rel(e.customDir, path)
			_, err = e.templates.New(filepath.ToSlash(relPath)).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parsing custom template %s: %w", path, err)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading custom templates: %w", err)
		}
	}

	return nil
}

// Override replaces the template called name with the contents of the file at path.
func (e *TextTemplateEngine) Override(name, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template override %s: %w", path, err)
	}
	if _, err := e.templates.New(name).Parse(string(content)); err != nil {
		return fmt.Errorf("parsing template override %s: %w", path, err)
	}
	return nil
}

func (e *TextTemplateEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
