package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kolah/swaggen/internal/naming"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when no --config flag is given.
const DefaultFile = "swaggen.yaml"

const (
	TargetTypeScript = "typescript"
	TargetGo         = "go"
)

// Collision policies for generated names.
const (
	CollisionsIgnore = "ignore"
	CollisionsWarn   = "warn"
	CollisionsError  = "error"
)

type Config struct {
	Spec       string         `koanf:"spec"`
	Target     string         `koanf:"target"`
	Naming     string         `koanf:"naming"`
	Collisions string         `koanf:"collisions"`
	Output     OutputConfig   `koanf:"output"`
	Templates  TemplateConfig `koanf:"templates"`
	Go         GoConfig       `koanf:"go"`
}

type OutputConfig struct {
	Dir            string `koanf:"dir"`
	OperationsDir  string `koanf:"operations-dir"`
	DefinitionsDir string `koanf:"definitions-dir"`
}

// TemplateConfig points at user templates. Dir replaces templates by relative name,
// the single-file entries replace one template each and win over Dir.
type TemplateConfig struct {
	Dir        string `koanf:"dir"`
	Definition string `koanf:"definition"`
	Operation  string `koanf:"operation"`
	Barrel     string `koanf:"barrel"`
}

type GoConfig struct {
	Module string `koanf:"module"`
}

func defaults() map[string]any {
	return map[string]any{
		"target":                 TargetTypeScript,
		"naming":                 string(naming.Original),
		"collisions":             CollisionsWarn,
		"output.dir":             "./dist",
		"output.operations-dir":  "requests",
		"output.definitions-dir": "models",
	}
}

// BindCommonFlags binds target-agnostic flags to the generate command
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: swaggen.yaml)")
	flags.StringP("spec", "s", "", "Swagger 2.0 document path (JSON or YAML)")
	flags.StringP("out", "o", "", "Output directory (default: ./dist)")
	flags.String("dist", "", "Alias of --out")
	flags.String("operation-dir", "", "Operations subdirectory (default: requests)")
	flags.String("definition-dir", "", "Definitions subdirectory (default: models)")
	flags.String("naming", "", "Property naming: camelCase, snake_case, original")
	flags.Bool("camel-case", false, "Shorthand for --naming camelCase")
	flags.String("collisions", "", "Name collision policy: ignore, warn, error")
	flags.String("templates", "", "Custom templates directory")
	flags.String("definition-template", "", "Template file for definitions")
	flags.String("operation-template", "", "Template file for operations")
	flags.String("barrel-template", "", "Template file for barrels")
	flags.Bool("dry-run", false, "Print output without writing files")
}

// Load layers defaults, the config file and changed flags. A non-empty target overrides the file.
func Load(cmd *cobra.Command, target string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	sets := flagSets(cmd)

	configFile := lookupString(sets, "config")
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(sets...)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if target != "" {
		cfg.Target = target
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func flagSets(cmd *cobra.Command) []*pflag.FlagSet {
	return []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.InheritedFlags()}
}

func lookupString(sets []*pflag.FlagSet, name string) string {
	for _, fs := range sets {
		if v, err := fs.GetString(name); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// flagKeys maps string flags onto config keys.
var flagKeys = map[string]string{
	"spec":                "spec",
	"dist":                "output.dir",
	"out":                 "output.dir",
	"operation-dir":       "output.operations-dir",
	"definition-dir":      "output.definitions-dir",
	"naming":              "naming",
	"collisions":          "collisions",
	"templates":           "templates.dir",
	"definition-template": "templates.definition",
	"operation-template":  "templates.operation",
	"barrel-template":     "templates.barrel",
	"module":              "go.module",
}

// buildFlagsMap collects every changed flag of sets as a koanf key map.
// --out wins over --dist, and an explicit --naming wins over --camel-case.
func buildFlagsMap(sets ...*pflag.FlagSet) map[string]any {
	m := make(map[string]any)
	changed := make(map[string]*pflag.Flag)

	for _, fs := range sets {
		fs.Visit(func(f *pflag.Flag) {
			changed[f.Name] = f
		})
	}

	if f, ok := changed["camel-case"]; ok && f.Value.String() == "true" {
		m["naming"] = string(naming.CamelCase)
	}

	for _, name := range []string{"dist", "out"} {
		if f, ok := changed[name]; ok && f.Value.String() != "" {
			m[flagKeys[name]] = f.Value.String()
		}
	}

	for name, key := range flagKeys {
		if name == "dist" || name == "out" {
			continue
		}
		if f, ok := changed[name]; ok && f.Value.String() != "" {
			m[key] = f.Value.String()
		}
	}

	return m
}

func (c *Config) Validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Output.OperationsDir == "" || c.Output.DefinitionsDir == "" {
		return fmt.Errorf("operations and definitions directories are required")
	}
	if filepath.Clean(c.Output.OperationsDir) == filepath.Clean(c.Output.DefinitionsDir) {
		return fmt.Errorf("operations and definitions directories must differ: %s", c.Output.OperationsDir)
	}

	switch c.Target {
	case TargetTypeScript:
	case TargetGo:
		if c.Go.Module == "" {
			return fmt.Errorf("go module is required for the go target (set go.module or --module)")
		}
	default:
		return fmt.Errorf("invalid target: %s (valid: typescript, go)", c.Target)
	}

	if _, err := naming.ParseStrategy(c.Naming); err != nil {
		return err
	}

	validCollisions := map[string]bool{"": true, CollisionsIgnore: true, CollisionsWarn: true, CollisionsError: true}
	if !validCollisions[c.Collisions] {
		return fmt.Errorf("invalid collision policy: %s (valid: ignore, warn, error)", c.Collisions)
	}

	return nil
}

// NamingStrategy returns the validated naming strategy.
func (c *Config) NamingStrategy() naming.Strategy {
	s, _ := naming.ParseStrategy(c.Naming)
	return s
}
