package codegen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kolah/swaggen/internal/config"
	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
	"github.com/kolah/swaggen/internal/targets"
	"github.com/kolah/swaggen/internal/targets/gostubs"
	"github.com/kolah/swaggen/internal/targets/typescript"
	"github.com/kolah/swaggen/internal/templates"
)

// ErrNameCollision is returned under the error collision policy when two sources derive the same name.
var ErrNameCollision = errors.New("name collision")

type Generator struct {
	target     targets.Target
	engine     templates.Engine
	layout     targets.Layout
	collisions string
}

type Output struct {
	Filename string
	Content  string
}

// Plan is the full set of outputs of one run, paths relative to the output root.
type Plan struct {
	Outputs  []Output
	Warnings []string
}

func New(cfg *config.Config) (*Generator, error) {
	layout := targets.Layout{
		OperationsDir:  cfg.Output.OperationsDir,
		DefinitionsDir: cfg.Output.DefinitionsDir,
		Naming:         cfg.NamingStrategy(),
	}

	var target targets.Target
	switch cfg.Target {
	case config.TargetTypeScript:
		target = typescript.New(layout)
	case config.TargetGo:
		target = gostubs.New(layout, cfg.Go.Module)
	default:
		return nil, fmt.Errorf("unknown target: %s", cfg.Target)
	}

	engine, err := newEngine(target, cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	collisions := cfg.Collisions
	if collisions == "" {
		collisions = config.CollisionsWarn
	}

	return &Generator{
		target:     target,
		engine:     engine,
		layout:     layout,
		collisions: collisions,
	}, nil
}

func newEngine(target targets.Target, cfg config.TemplateConfig) (*templates.TextTemplateEngine, error) {
	reg := templates.NewRegistry()
	target.Register(reg)

	builtin, err := target.Templates()
	if err != nil {
		return nil, err
	}

	engine, err := templates.NewEngine(builtin, cfg.Dir, reg)
	if err != nil {
		return nil, err
	}

	overrides := []struct{ name, path string }{
		{targets.TemplateDefinition, cfg.Definition},
		{targets.TemplateOperation, cfg.Operation},
		{targets.TemplateBarrel, cfg.Barrel},
	}
	for _, o := range overrides {
		if o.path == "" {
			continue
		}
		if err := engine.Override(o.name, o.path); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

func (g *Generator) Generate(result *model.ParseResult) (*Plan, error) {
	plan := &Plan{}

	if err := g.checkCollisions(result, plan); err != nil {
		return nil, err
	}

	defNames := make([]string, 0, len(result.Definitions))
	for _, def := range result.Definitions {
		id := g.target.Identifier(def.Name)
		content, err := g.target.RenderDefinition(g.engine, def)
		if err != nil {
			return nil, fmt.Errorf("rendering definition %s: %w", def.Name, err)
		}
		plan.add(filepath.Join(g.layout.DefinitionsDir, g.target.FileName(id)), content)
		defNames = append(defNames, id)
	}
	if err := g.barrel(plan, targets.GroupDefinitions, defNames); err != nil {
		return nil, err
	}

	opNames := make([]string, 0, len(result.Operations))
	for _, op := range result.Operations {
		id := g.target.Identifier(op.Name)
		content, err := g.target.RenderOperation(g.engine, op)
		if err != nil {
			return nil, fmt.Errorf("rendering operation %s %s: %w", op.Method, op.Path, err)
		}
		plan.add(filepath.Join(g.layout.OperationsDir, g.target.FileName(id)), content)
		opNames = append(opNames, id)
	}
	if err := g.barrel(plan, targets.GroupOperations, opNames); err != nil {
		return nil, err
	}

	files, err := g.target.SupportFiles(g.engine, result)
	if err != nil {
		return nil, fmt.Errorf("rendering support files: %w", err)
	}
	for _, f := range files {
		plan.add(f.Path, f.Content)
	}

	return plan, nil
}

func (g *Generator) barrel(plan *Plan, group targets.Group, names []string) error {
	if len(names) == 0 {
		return nil
	}
	content, err := g.target.RenderBarrel(g.engine, group, unique(names))
	if err != nil {
		return fmt.Errorf("rendering %s barrel: %w", group, err)
	}
	plan.add(filepath.Join(g.layout.Dir(group), g.target.BarrelName()), content)
	return nil
}

func (g *Generator) checkCollisions(result *model.ParseResult, plan *Plan) error {
	reg := naming.NewRegistry()
	for i, def := range result.Definitions {
		reg.Collect(string(targets.GroupDefinitions), g.target.Identifier(def.Name), fmt.Sprintf("definitions[%d] %s", i, def.Name))
	}
	for _, op := range result.Operations {
		reg.Collect(string(targets.GroupOperations), g.target.Identifier(op.Name), fmt.Sprintf("%s %s", op.Method, op.Path))
	}

	collisions := reg.Collisions()
	if len(collisions) == 0 {
		return nil
	}

	switch g.collisions {
	case config.CollisionsIgnore:
	case config.CollisionsError:
		msgs := make([]string, len(collisions))
		for i, c := range collisions {
			msgs[i] = c.String()
		}
		return fmt.Errorf("%w: %s", ErrNameCollision, strings.Join(msgs, "; "))
	default:
		for _, c := range collisions {
			plan.Warnings = append(plan.Warnings, "name collision: "+c.String())
		}
	}
	return nil
}

// add records an output. A later output for the same path replaces the earlier content.
func (p *Plan) add(path, content string) {
	for i := range p.Outputs {
		if p.Outputs[i].Filename == path {
			p.Outputs[i].Content = content
			return
		}
	}
	p.Outputs = append(p.Outputs, Output{Filename: path, Content: content})
}

func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	return result
}
