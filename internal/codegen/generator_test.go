package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kolah/swaggen/internal/config"
	"github.com/kolah/swaggen/internal/loader"
	"github.com/kolah/swaggen/internal/model"
	"github.com/stretchr/testify/require"
)

const petstore = `
swagger: "2.0"
info:
  title: Petstore
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
definitions:
  Pet:
    type: object
    required: [id]
    properties:
      id:
        type: integer
        format: int64
      owner:
        $ref: "#/definitions/Owner"
  Owner:
    type: object
    properties:
      name:
        type: string
`

func parse(t *testing.T, doc string) *model.ParseResult {
	t.Helper()
	loaded, err := loader.Load([]byte(doc))
	require.NoError(t, err)
	result, err := loader.Transform(loaded)
	require.NoError(t, err)
	return result
}

func testConfig(target string) *config.Config {
	cfg := &config.Config{
		Spec:       "petstore.yaml",
		Target:     target,
		Naming:     "original",
		Collisions: config.CollisionsWarn,
		Output: config.OutputConfig{
			Dir:            "./dist",
			OperationsDir:  "requests",
			DefinitionsDir: "models",
		},
	}
	if target == config.TargetGo {
		cfg.Go.Module = "example.com/petstore/gen"
	}
	return cfg
}

func filenames(plan *Plan) []string {
	names := make([]string, len(plan.Outputs))
	for i, o := range plan.Outputs {
		names[i] = o.Filename
	}
	return names
}

func content(t *testing.T, plan *Plan, filename string) string {
	t.Helper()
	for _, o := range plan.Outputs {
		if o.Filename == filename {
			return o.Content
		}
	}
	t.Fatalf("no output %s", filename)
	return ""
}

func TestGenerateTypeScript(t *testing.T) {
	gen, err := New(testConfig(config.TargetTypeScript))
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, petstore))
	require.NoError(t, err)
	require.Empty(t, plan.Warnings)

	require.Equal(t, []string{
		"models/Pet.ts",
		"models/Owner.ts",
		"models/index.ts",
		"requests/ListPets.ts",
		"requests/index.ts",
		"APIRequest.ts",
	}, filenames(plan))

	require.Contains(t, content(t, plan, "requests/ListPets.ts"), "export class ListPets implements APIRequest<Pet[]> {")
	require.Contains(t, content(t, plan, "requests/ListPets.ts"), `import { Pet } from "../models/Pet";`)
	require.Equal(t, "export * from \"./Pet\";\nexport * from \"./Owner\";\n", content(t, plan, "models/index.ts"))
}

func TestGenerateGo(t *testing.T) {
	gen, err := New(testConfig(config.TargetGo))
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, petstore))
	require.NoError(t, err)

	require.Equal(t, []string{
		"models/pet.go",
		"models/owner.go",
		"models/registry.go",
		"requests/list_pets.go",
		"requests/registry.go",
	}, filenames(plan))

	require.Contains(t, content(t, plan, "models/pet.go"), "type Pet struct {")
	require.Contains(t, content(t, plan, "requests/list_pets.go"), "return new([]models.Pet)")
}

func TestGenerateEmptyGroups(t *testing.T) {
	gen, err := New(testConfig(config.TargetTypeScript))
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, `{"swagger": "2.0", "info": {"title": "Empty", "version": "0"}, "paths": {}}`))
	require.NoError(t, err)
	require.Empty(t, plan.Outputs)

	plan, err = gen.Generate(parse(t, `
swagger: "2.0"
info: {title: Models, version: "0"}
paths: {}
definitions:
  Pet:
    type: string
`))
	require.NoError(t, err)
	require.Equal(t, []string{"models/Pet.ts", "models/index.ts"}, filenames(plan))
}

const colliding = `
swagger: "2.0"
info: {title: Collide, version: "0"}
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200": {description: ok}
  /animals:
    get:
      operationId: listPets
      responses:
        "200": {description: ok}
`

func TestGenerateCollisions(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		wantErr  bool
		warnings int
	}{
		{name: "ignore", policy: config.CollisionsIgnore},
		{name: "warn", policy: config.CollisionsWarn, warnings: 1},
		{name: "default warns", policy: "", warnings: 1},
		{name: "error", policy: config.CollisionsError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(config.TargetTypeScript)
			cfg.Collisions = tt.policy

			gen, err := New(cfg)
			require.NoError(t, err)

			plan, err := gen.Generate(parse(t, colliding))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNameCollision)
				require.Contains(t, err.Error(), `operations "ListPets" derived by GET /pets, GET /animals`)
				return
			}
			require.NoError(t, err)
			require.Len(t, plan.Warnings, tt.warnings)

			require.Equal(t, []string{"requests/ListPets.ts", "requests/index.ts", "APIRequest.ts"}, filenames(plan))
			require.Contains(t, content(t, plan, "requests/ListPets.ts"), `this.path = "/animals";`)
			require.Equal(t, "export * from \"./ListPets\";\n", content(t, plan, "requests/index.ts"))
		})
	}
}

func TestGenerateGoIdentifierCollision(t *testing.T) {
	gen, err := New(testConfig(config.TargetGo))
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, `
swagger: "2.0"
info: {title: Collide, version: "0"}
paths: {}
definitions:
  pet_status:
    type: string
  PetStatus:
    type: number
`))
	require.NoError(t, err)
	require.Len(t, plan.Warnings, 1)
	require.Contains(t, plan.Warnings[0], `definitions "PetStatus" derived by definitions[0] pet_status, definitions[1] PetStatus`)
	require.Equal(t, []string{"models/pet_status.go", "models/registry.go"}, filenames(plan))
	require.Contains(t, content(t, plan, "models/pet_status.go"), "type PetStatus = float64")
}

func TestGenerateTypeScriptUnsafeNames(t *testing.T) {
	gen, err := New(testConfig(config.TargetTypeScript))
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, `
swagger: "2.0"
info: {title: Unsafe, version: "0"}
paths: {}
definitions:
  Pet/Owner:
    type: object
    properties:
      name: {type: string}
  Pet:
    type: object
    properties:
      owner:
        $ref: "#/definitions/Pet~1Owner"
  ../../escaped:
    type: string
`))
	require.NoError(t, err)

	require.Equal(t, []string{
		"models/Pet_Owner.ts",
		"models/Pet.ts",
		"models/______escaped.ts",
		"models/index.ts",
	}, filenames(plan))

	require.Contains(t, content(t, plan, "models/Pet_Owner.ts"), "export interface Pet_Owner {")
	pet := content(t, plan, "models/Pet.ts")
	require.Contains(t, pet, `import { Pet_Owner } from "./Pet_Owner";`)
	require.Contains(t, pet, "  owner?: Pet_Owner;\n")
	require.Equal(t, "export * from \"./Pet_Owner\";\nexport * from \"./Pet\";\nexport * from \"./______escaped\";\n", content(t, plan, "models/index.ts"))
}

func TestGenerateTemplateOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "barrel.tmpl"), []byte(`{{range .Names}}{{.}};{{end}}`), 0644))

	definition := filepath.Join(t.TempDir(), "definition.tmpl")
	require.NoError(t, os.WriteFile(definition, []byte(`// {{.Name}} {{normalizeCase "owner_name"}}`), 0644))

	cfg := testConfig(config.TargetTypeScript)
	cfg.Naming = "camelCase"
	cfg.Templates.Dir = dir
	cfg.Templates.Definition = definition

	gen, err := New(cfg)
	require.NoError(t, err)

	plan, err := gen.Generate(parse(t, petstore))
	require.NoError(t, err)

	require.Equal(t, "// Pet ownerName", content(t, plan, "models/Pet.ts"))
	require.Equal(t, "Pet;Owner;", content(t, plan, "models/index.ts"))
	require.Equal(t, "ListPets;", content(t, plan, "requests/index.ts"))
}

func TestNewInvalidOverride(t *testing.T) {
	cfg := testConfig(config.TargetTypeScript)
	cfg.Templates.Operation = filepath.Join(t.TempDir(), "missing.tmpl")

	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating template engine")
}

func TestNewUnknownTarget(t *testing.T) {
	cfg := testConfig("java")
	_, err := New(cfg)
	require.Error(t, err)
}
