// Package targets defines what an output language provides to the generator.
package targets

import (
	"io/fs"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
	"github.com/kolah/swaggen/internal/templates"
)

// Template names every target ships.
const (
	TemplateDefinition = "definition.tmpl"
	TemplateOperation  = "operation.tmpl"
	TemplateBarrel     = "barrel.tmpl"
)

type Group string

const (
	GroupDefinitions Group = "definitions"
	GroupOperations  Group = "operations"
)

// Layout is where the groups are written, relative to the output root, and how property keys are cased.
type Layout struct {
	OperationsDir  string
	DefinitionsDir string
	Naming         naming.Strategy
}

// Dir returns the directory of group.
func (l Layout) Dir(group Group) string {
	if group == GroupOperations {
		return l.OperationsDir
	}
	return l.DefinitionsDir
}

// File is an output relative to the output root.
type File struct {
	Path    string
	Content string
}

// Target renders the intermediate model in one language.
type Target interface {
	Name() string
	// Templates returns the built-in templates, named by the Template* constants.
	Templates() (fs.FS, error)
	// Register adds the target's helpers and partials to an engine registry.
	Register(reg *templates.Registry)
	// Identifier converts a derived name into the declared name in the target language.
	Identifier(name string) string
	// FileName is the file an identifier is written to.
	FileName(identifier string) string
	BarrelName() string

	RenderDefinition(engine templates.Engine, def model.DefinitionSchema) (string, error)
	RenderOperation(engine templates.Engine, op model.OperationSchema) (string, error)
	RenderBarrel(engine templates.Engine, group Group, identifiers []string) (string, error)
	// SupportFiles returns runtime files emitted next to the groups.
	SupportFiles(engine templates.Engine, result *model.ParseResult) ([]File, error)
}
