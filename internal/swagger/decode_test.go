package swagger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaShape(t *testing.T) {
	tests := []struct {
		name     string
		node     *SchemaNode
		expected Shape
	}{
		{"primitive", &SchemaNode{Type: "string"}, ShapePrimitive},
		{"array", &SchemaNode{Type: "array", Items: &SchemaNode{Type: "string"}}, ShapeArray},
		{"ref", RefNode("#/definitions/Pet"), ShapeStructural},
		{"properties", (&SchemaNode{Type: "object"}).Mark("properties"), ShapeStructural},
		{"structural array", (&SchemaNode{Type: "array"}).Mark("example"), ShapeStructural},
		{"enum wins", (&SchemaNode{Type: "string", Enum: []any{"a"}}).Mark("$ref"), ShapeEnum},
		{"empty enum", &SchemaNode{Type: "string", Enum: []any{}}, ShapeEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.node.Shape())
		})
	}
}

func TestDecodeKeepsOrder(t *testing.T) {
	doc, err := Decode([]byte(`
swagger: "2.0"
definitions:
  Zebra:
    type: object
    properties:
      b: {type: string}
      a: {type: integer}
  Apple:
    type: string
paths:
  /z:
    post:
      responses: {}
    get:
      responses: {}
`))
	require.NoError(t, err)
	require.Equal(t, "2.0", doc.Swagger)

	var names []string
	for name := range doc.Definitions.FromOldest() {
		names = append(names, name)
	}
	require.Equal(t, []string{"Zebra", "Apple"}, names)

	zebra, ok := doc.Definitions.Get("Zebra")
	require.True(t, ok)
	var props []string
	for name := range zebra.Properties.FromOldest() {
		props = append(props, name)
	}
	require.Equal(t, []string{"b", "a"}, props)

	item, ok := doc.Paths.Get("/z")
	require.True(t, ok)
	var methods []string
	for m := range item.Operations.FromOldest() {
		methods = append(methods, m)
	}
	require.Equal(t, []string{"post", "get"}, methods)
}

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode([]byte(`{"swagger": "2.0", "consumes": ["application/json"], "definitions": {"Pet": {"required": ["id"], "properties": {"id": {"type": "integer", "x-nullable": true}}}}}`))
	require.NoError(t, err)
	require.Equal(t, []string{"application/json"}, doc.Consumes)

	pet, ok := doc.Definitions.Get("Pet")
	require.True(t, ok)
	require.Equal(t, ShapeStructural, pet.Shape())
	require.Equal(t, []string{"id"}, pet.Required)

	id, ok := pet.Properties.Get("id")
	require.True(t, ok)
	require.True(t, id.Nullable)
	require.Equal(t, ShapePrimitive, id.Shape())
}

func TestDecodeParameters(t *testing.T) {
	doc, err := Decode([]byte(`
swagger: "2.0"
paths:
  /pets:
    parameters:
      - name: trace
        in: header
        type: string
    get:
      deprecated: true
      parameters:
        - name: tags
          in: query
          required: true
          type: array
          items:
            type: string
        - name: body
          in: body
          schema:
            $ref: '#/definitions/Pet'
        - $ref: '#/parameters/limit'
      responses:
        "200":
          $ref: '#/responses/Ok'
    x-extra:
      foo: bar
`))
	require.NoError(t, err)

	item, ok := doc.Paths.Get("/pets")
	require.True(t, ok)
	require.Len(t, item.Parameters, 1)
	require.Equal(t, 1, item.Operations.Len())

	op, ok := item.Operations.Get("get")
	require.True(t, ok)
	require.True(t, op.Deprecated)
	require.Len(t, op.Parameters, 3)

	tags := op.Parameters[0]
	require.Equal(t, InQuery, tags.In)
	require.True(t, tags.Required)
	require.Equal(t, ShapeArray, tags.Shape.Shape(), "boolean required must not make a parameter structural")

	body := op.Parameters[1]
	require.Equal(t, InBody, body.In)
	require.Equal(t, "#/definitions/Pet", body.Schema.Ref)

	require.Equal(t, "#/parameters/limit", op.Parameters[2].Ref)

	resp, ok := op.Responses.Get("200")
	require.True(t, ok)
	require.Equal(t, "#/responses/Ok", resp.Ref)
}

func TestDecodeEnumValues(t *testing.T) {
	doc, err := Decode([]byte(`
swagger: "2.0"
definitions:
  Level:
    type: integer
    enum: [1, 2, 3]
  Empty:
    type: string
    enum: []
`))
	require.NoError(t, err)

	level, _ := doc.Definitions.Get("Level")
	require.Equal(t, []any{1, 2, 3}, level.Enum)

	empty, _ := doc.Definitions.Get("Empty")
	require.NotNil(t, empty.Enum)
	require.Empty(t, empty.Enum)
}

func TestDecodeNullEnum(t *testing.T) {
	doc, err := Decode([]byte(`
swagger: "2.0"
definitions:
  A:
    type: string
    enum: null
  B:
    type: integer
    enum: ~
paths:
  /a:
    get:
      parameters:
        - name: mode
          in: query
          type: string
          enum:
      responses: {}
`))
	require.NoError(t, err)

	a, _ := doc.Definitions.Get("A")
	require.Nil(t, a.Enum)
	require.Equal(t, ShapePrimitive, a.Shape())

	b, _ := doc.Definitions.Get("B")
	require.Nil(t, b.Enum)

	item, _ := doc.Paths.Get("/a")
	op, _ := item.Operations.Get("get")
	require.Nil(t, op.Parameters[0].Shape.Enum)
}

func TestDecodeAliases(t *testing.T) {
	doc, err := Decode([]byte(`
swagger: "2.0"
definitions:
  Base: &base
    type: object
    properties:
      id: {type: integer}
  Copy: *base
`))
	require.NoError(t, err)

	c, ok := doc.Definitions.Get("Copy")
	require.True(t, ok)
	require.Equal(t, ShapeStructural, c.Shape())
	require.Equal(t, 1, c.Properties.Len())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("- just\n- a list\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a mapping")

	_, err = Decode([]byte("swagger: [unclosed"))
	require.Error(t, err)

	_, err = Decode([]byte(`
swagger: "2.0"
paths:
  /x:
    get:
      parameters: {not: a list}
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "paths./x")
}

func TestIsHTTPMethod(t *testing.T) {
	require.True(t, IsHTTPMethod("get"))
	require.True(t, IsHTTPMethod("PATCH"))
	require.False(t, IsHTTPMethod("parameters"))
	require.False(t, IsHTTPMethod("x-internal"))
}
