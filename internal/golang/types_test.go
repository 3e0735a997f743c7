package golang

import (
	"testing"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/naming"
	"github.com/stretchr/testify/require"
)

func prim(typ string) model.TypedSchema {
	return model.TypedSchema{Type: typ, Enum: []any{}, Properties: model.Properties{}}
}

func object(props ...model.Property) model.TypedSchema {
	s := prim(model.TypeAny)
	s.Properties = props
	return s
}

func TestGoType(t *testing.T) {
	ref := prim("pet_owner")
	ref.IsRef = true

	refArray := ref
	refArray.IsArray = true

	numbers := prim(model.TypeNumber)
	numbers.IsArray = true

	tests := []struct {
		name      string
		schema    model.TypedSchema
		qualifier string
		expected  string
	}{
		{"string", prim(model.TypeString), "", "string"},
		{"number", prim(model.TypeNumber), "", "float64"},
		{"boolean", prim(model.TypeBoolean), "", "bool"},
		{"date", prim(model.TypeDate), "", "time.Time"},
		{"untyped array", prim(model.TypeArray), "", "[]any"},
		{"error", prim(model.TypeError), "", "any"},
		{"any", prim(model.TypeAny), "", "any"},
		{"void", prim(model.TypeVoid), "", "struct{}"},
		{"parameter slot", prim(model.TypeObject), "", "map[string]any"},
		{"ref", ref, "", "PetOwner"},
		{"qualified ref", ref, "models.", "models.PetOwner"},
		{"array of refs", refArray, "models.", "[]models.PetOwner"},
		{"array of numbers", numbers, "", "[]float64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, GoType(tt.schema, tt.qualifier))
		})
	}
}

func TestGoTypeInlineStruct(t *testing.T) {
	name := prim(model.TypeString)
	name.IsRequired = true

	got := GoType(object(
		model.Property{Name: "name", Schema: name},
		model.Property{Name: "tag", Schema: prim(model.TypeString)},
	), "")

	require.Equal(t, "struct {\nName string `json:\"name\"`\nTag *string `json:\"tag,omitempty\"`\n}", got)
}

func TestFieldType(t *testing.T) {
	required := func(s model.TypedSchema) model.TypedSchema {
		s.IsRequired = true
		return s
	}
	nullable := func(s model.TypedSchema) model.TypedSchema {
		s.IsNullable = true
		return s
	}
	ref := prim("Pet")
	ref.IsRef = true
	list := prim(model.TypeString)
	list.IsArray = true

	tests := []struct {
		name     string
		schema   model.TypedSchema
		expected string
	}{
		{"required string", required(prim(model.TypeString)), "string"},
		{"optional string", prim(model.TypeString), "*string"},
		{"required nullable number", nullable(required(prim(model.TypeNumber))), "*float64"},
		{"optional ref", ref, "*Pet"},
		{"required ref", required(ref), "Pet"},
		{"optional slice", list, "[]string"},
		{"optional any", prim(model.TypeAny), "any"},
		{"optional date", prim(model.TypeDate), "*time.Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FieldType(tt.schema, ""))
		})
	}
}

func TestFields(t *testing.T) {
	id := prim(model.TypeNumber)
	id.IsRequired = true

	s := object(
		model.Property{Name: "pet_id", Schema: id},
		model.Property{Name: "petId", Schema: prim(model.TypeString)},
		model.Property{Name: "created-at", Schema: prim(model.TypeDate)},
	)

	fields := Fields(s, "", naming.CamelCase, false)
	require.Len(t, fields, 3)

	require.Equal(t, Field{Name: "PetID", Source: "pet_id", Key: "petId", Type: "float64", Tag: "`json:\"petId\"`"}, fields[0])
	require.Equal(t, "PetID2", fields[1].Name)
	require.Equal(t, "*string", fields[1].Type)
	require.Equal(t, "CreatedAt", fields[2].Name)
	require.Equal(t, "createdAt", fields[2].Key)
	require.Equal(t, "`json:\"createdAt,omitempty\"`", fields[2].Tag)
}

func TestFieldsForcedRequired(t *testing.T) {
	nullable := prim(model.TypeString)
	nullable.IsNullable = true

	fields := Fields(object(model.Property{Name: "petId", Schema: nullable}), "", naming.Original, true)
	require.Len(t, fields, 1)
	require.Equal(t, "string", fields[0].Type)
	require.Equal(t, "`json:\"petId\"`", fields[0].Tag)
}

func TestJSONTag(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		required bool
		expected string
	}{
		{"required", "id", true, "`json:\"id\"`"},
		{"optional", "name", false, "`json:\"name,omitempty\"`"},
		{"snake key", "created_at", false, "`json:\"created_at,omitempty\"`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, JSONTag(tt.key, tt.required))
		})
	}
}

func TestNeedsTimeImport(t *testing.T) {
	dateRef := prim(model.TypeDate)
	dateRef.IsRef = true

	tests := []struct {
		name     string
		schema   model.TypedSchema
		expected bool
	}{
		{"string", prim(model.TypeString), false},
		{"date", prim(model.TypeDate), true},
		{"nested date", object(model.Property{Name: "at", Schema: prim(model.TypeDate)}), true},
		{"ref named Date", dateRef, false},
		{"no dates", object(model.Property{Name: "n", Schema: prim(model.TypeNumber)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NeedsTimeImport(tt.schema))
		})
	}
}

func TestEnumConsts(t *testing.T) {
	status := prim(model.TypeString)
	status.Enum = []any{"available", "on-hold", "ON_HOLD", "", nil}

	require.Equal(t, []EnumConst{
		{Name: "StatusAvailable", Value: `"available"`},
		{Name: "StatusOnHold", Value: `"on-hold"`},
		{Name: "StatusOnHold2", Value: `"ON_HOLD"`},
		{Name: "StatusValue3", Value: `""`},
	}, EnumConsts("Status", status))
}

func TestEnumConstsNumbers(t *testing.T) {
	level := prim(model.TypeNumber)
	level.Enum = []any{1, 2.5, "three"}

	require.Equal(t, []EnumConst{
		{Name: "Level1", Value: "1"},
		{Name: "Level25", Value: "2.5"},
	}, EnumConsts("Level", level))
}

func TestEnumLiteral(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		value    any
		expected string
		ok       bool
	}{
		{"string", model.TypeString, "a\"b", `"a\"b"`, true},
		{"bool", model.TypeBoolean, true, "true", true},
		{"int", model.TypeNumber, 42, "42", true},
		{"uint64", model.TypeNumber, uint64(7), "7", true},
		{"float", model.TypeNumber, 1.5, "1.5", true},
		{"string on number", model.TypeNumber, "x", "", false},
		{"null", model.TypeString, nil, "", false},
		{"list", model.TypeAny, []any{1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EnumLiteral(tt.typ, tt.value)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestIsStruct(t *testing.T) {
	withProps := object(model.Property{Name: "a", Schema: prim(model.TypeString)})
	arrayOf := withProps
	arrayOf.IsArray = true

	require.True(t, IsStruct(withProps))
	require.False(t, IsStruct(arrayOf))
	require.False(t, IsStruct(prim(model.TypeString)))
	require.False(t, IsStruct(object()))
}

func TestURLExpr(t *testing.T) {
	params := object(
		model.Property{Name: "petId", Schema: prim(model.TypeNumber)},
	)

	tests := []struct {
		name     string
		path     string
		params   any
		expected string
	}{
		{"no params", "/pets", params, `"/pets"`},
		{"trailing param", "/pets/{petId}", params, `"/pets/" + url.PathEscape(fmt.Sprint(r.PathParams.PetID))`},
		{"inner param", "/pets/{petId}/photo", params, `"/pets/" + url.PathEscape(fmt.Sprint(r.PathParams.PetID)) + "/photo"`},
		{"undeclared param", "/owners/{ownerId}", params, `"/owners/{ownerId}"`},
		{"only param", "{petId}", params, `url.PathEscape(fmt.Sprint(r.PathParams.PetID))`},
		{"nil params", "/pets/{petId}", nil, `"/pets/{petId}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, URLExpr(tt.path, tt.params, "r"))
		})
	}
}

func TestGoComment(t *testing.T) {
	require.Equal(t, "", GoComment(""))
	require.Equal(t, "// List pets", GoComment("List pets"))
	require.Equal(t, "// First\n//\n// Second", GoComment("First\n\n  Second  \n"))
}
