// Package swagger holds the Swagger 2.0 document model consumed by the loader.
//
// Maps are kept as ordered maps so that iteration follows the order of the source document.
package swagger

import (
	"github.com/pb33f/libopenapi/orderedmap"
)

// SupportedVersion is the only value of the "swagger" field this tool accepts.
const SupportedVersion = "2.0"

type Document struct {
	Swagger     string
	Info        Info
	Host        string
	BasePath    string
	Consumes    []string
	Produces    []string
	Definitions *orderedmap.Map[string, *SchemaNode]
	Parameters  *orderedmap.Map[string, *Parameter]
	Responses   *orderedmap.Map[string, *Response]
	Paths       *orderedmap.Map[string, *PathItem]
}

type Info struct {
	Title       string
	Description string
	Version     string
}

// PathItem holds the operations declared under one path, keyed by method as written.
type PathItem struct {
	Parameters []*Parameter
	Operations *orderedmap.Map[string, *Operation]
}

type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Consumes    []string
	Produces    []string
	Parameters  []*Parameter
	Responses   *orderedmap.Map[string, *Response]
}

// Parameter is one operation parameter. Non-body parameters describe their type inline,
// so the parameter itself is kept as a schema node in Shape.
type Parameter struct {
	Ref      string
	Name     string
	In       string
	Required bool
	Schema   *SchemaNode
	Shape    *SchemaNode
}

const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InBody     = "body"
	InFormData = "formData"
)

type Response struct {
	Ref         string
	Description string
	Schema      *SchemaNode
}

// SchemaNode is a schema object, a parameter type description or an items object.
type SchemaNode struct {
	Type       string
	Format     string
	Ref        string
	Nullable   bool
	Enum       []any
	Items      *SchemaNode
	Properties *orderedmap.Map[string, *SchemaNode]
	Required   []string

	// markers records which structural keywords were present on the node.
	markers map[string]bool
}

// Shape classifies a schema node for the type mapper.
type Shape int

const (
	ShapePrimitive Shape = iota
	ShapeEnum
	ShapeStructural
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeEnum:
		return "enum"
	case ShapeStructural:
		return "structural"
	case ShapeArray:
		return "array"
	default:
		return "primitive"
	}
}

// structuralKeys mark a full schema object as opposed to a bare parameter or items shape.
var structuralKeys = []string{
	"$ref",
	"allOf",
	"additionalProperties",
	"properties",
	"discriminator",
	"readOnly",
	"xml",
	"externalDocs",
	"example",
	"required",
}

// Shape returns the node's classification. Enum wins over structural, structural over array.
func (n *SchemaNode) Shape() Shape {
	switch {
	case n.Enum != nil:
		return ShapeEnum
	case n.IsStructural():
		return ShapeStructural
	case n.Type == "array":
		return ShapeArray
	default:
		return ShapePrimitive
	}
}

// IsStructural reports whether any structural keyword was present.
func (n *SchemaNode) IsStructural() bool {
	for _, k := range structuralKeys {
		if n.markers[k] {
			return true
		}
	}
	return false
}

// Mark records a structural keyword as present. It is used when building nodes in code.
func (n *SchemaNode) Mark(key string) *SchemaNode {
	if n.markers == nil {
		n.markers = make(map[string]bool)
	}
	n.markers[key] = true
	return n
}

// RefNode builds a bare reference node.
func RefNode(ref string) *SchemaNode {
	return (&SchemaNode{Ref: ref}).Mark("$ref")
}
