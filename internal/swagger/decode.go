package swagger

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"
)

var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true,
}

// IsHTTPMethod reports whether a path item key names an operation.
func IsHTTPMethod(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// Decode parses a JSON or YAML Swagger document, preserving map order.
func Decode(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	node := resolve(&root)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("parsing document: empty document")
		}
		node = resolve(node.Content[0])
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing document: expected a mapping at the root")
	}
	return decodeDocument(node)
}

func decodeDocument(node *yaml.Node) (*Document, error) {
	doc := &Document{
		Definitions: orderedmap.New[string, *SchemaNode](),
		Parameters:  orderedmap.New[string, *Parameter](),
		Responses:   orderedmap.New[string, *Response](),
		Paths:       orderedmap.New[string, *PathItem](),
	}

	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "swagger":
			doc.Swagger = value.Value
		case "info":
			doc.Info = decodeInfo(value)
		case "host":
			doc.Host = value.Value
		case "basePath":
			doc.BasePath = value.Value
		case "consumes":
			doc.Consumes = stringList(value)
		case "produces":
			doc.Produces = stringList(value)
		case "definitions":
			return eachPair(value, func(name string, v *yaml.Node) error {
				s, err := decodeSchema(v)
				if err != nil {
					return fmt.Errorf("definitions.%s: %w", name, err)
				}
				doc.Definitions.Set(name, s)
				return nil
			})
		case "parameters":
			return eachPair(value, func(name string, v *yaml.Node) error {
				p, err := decodeParameter(v)
				if err != nil {
					return fmt.Errorf("parameters.%s: %w", name, err)
				}
				doc.Parameters.Set(name, p)
				return nil
			})
		case "responses":
			return eachPair(value, func(name string, v *yaml.Node) error {
				r, err := decodeResponse(v)
				if err != nil {
					return fmt.Errorf("responses.%s: %w", name, err)
				}
				doc.Responses.Set(name, r)
				return nil
			})
		case "paths":
			return eachPair(value, func(path string, v *yaml.Node) error {
				item, err := decodePathItem(v)
				if err != nil {
					return fmt.Errorf("paths.%s: %w", path, err)
				}
				doc.Paths.Set(path, item)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

func decodeInfo(node *yaml.Node) Info {
	var info Info
	_ = eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "title":
			info.Title = value.Value
		case "description":
			info.Description = value.Value
		case "version":
			info.Version = value.Value
		}
		return nil
	})
	return info
}

func decodePathItem(node *yaml.Node) (*PathItem, error) {
	item := &PathItem{Operations: orderedmap.New[string, *Operation]()}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		if key == "parameters" {
			params, err := decodeParameters(value)
			if err != nil {
				return err
			}
			item.Parameters = params
			return nil
		}
		if !IsHTTPMethod(key) {
			return nil
		}
		op, err := decodeOperation(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		item.Operations.Set(key, op)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func decodeOperation(node *yaml.Node) (*Operation, error) {
	op := &Operation{Responses: orderedmap.New[string, *Response]()}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "operationId":
			op.OperationID = value.Value
		case "summary":
			op.Summary = value.Value
		case "description":
			op.Description = value.Value
		case "tags":
			op.Tags = stringList(value)
		case "deprecated":
			op.Deprecated = boolValue(value)
		case "consumes":
			op.Consumes = stringList(value)
		case "produces":
			op.Produces = stringList(value)
		case "parameters":
			params, err := decodeParameters(value)
			if err != nil {
				return err
			}
			op.Parameters = params
		case "responses":
			return eachPair(value, func(code string, v *yaml.Node) error {
				r, err := decodeResponse(v)
				if err != nil {
					return fmt.Errorf("responses.%s: %w", code, err)
				}
				op.Responses.Set(code, r)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

func decodeParameters(node *yaml.Node) ([]*Parameter, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parameters: expected a sequence")
	}
	var params []*Parameter
	for i, n := range node.Content {
		p, err := decodeParameter(n)
		if err != nil {
			return nil, fmt.Errorf("parameters[%d]: %w", i, err)
		}
		params = append(params, p)
	}
	return params, nil
}

func decodeParameter(node *yaml.Node) (*Parameter, error) {
	p := &Parameter{}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "$ref":
			p.Ref = value.Value
		case "name":
			p.Name = value.Value
		case "in":
			p.In = value.Value
		case "required":
			p.Required = boolValue(value)
		case "schema":
			s, err := decodeSchema(value)
			if err != nil {
				return fmt.Errorf("schema: %w", err)
			}
			p.Schema = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	shape, err := decodeSchema(node)
	if err != nil {
		return nil, err
	}
	p.Shape = shape
	return p, nil
}

func decodeResponse(node *yaml.Node) (*Response, error) {
	r := &Response{}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "$ref":
			r.Ref = value.Value
		case "description":
			r.Description = value.Value
		case "schema":
			s, err := decodeSchema(value)
			if err != nil {
				return fmt.Errorf("schema: %w", err)
			}
			r.Schema = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func decodeSchema(node *yaml.Node) (*SchemaNode, error) {
	node = resolve(node)
	s := &SchemaNode{}
	if node.Kind != yaml.MappingNode {
		return s, nil
	}
	err := eachPair(node, func(key string, value *yaml.Node) error {
		switch key {
		case "type":
			s.Type = value.Value
		case "format":
			s.Format = value.Value
		case "x-nullable":
			s.Nullable = boolValue(value)
		case "$ref":
			s.Ref = value.Value
			s.Mark(key)
		case "enum":
			if isNull(value) {
				return nil
			}
			values, err := anyList(value)
			if err != nil {
				return fmt.Errorf("enum: %w", err)
			}
			s.Enum = values
		case "items":
			items, err := decodeSchema(value)
			if err != nil {
				return fmt.Errorf("items: %w", err)
			}
			s.Items = items
		case "properties":
			s.Mark(key)
			s.Properties = orderedmap.New[string, *SchemaNode]()
			return eachPair(value, func(name string, v *yaml.Node) error {
				child, err := decodeSchema(v)
				if err != nil {
					return fmt.Errorf("properties.%s: %w", name, err)
				}
				s.Properties.Set(name, child)
				return nil
			})
		case "required":
			// Parameters carry a boolean "required"; only a list is structural.
			if resolve(value).Kind == yaml.SequenceNode {
				s.Required = stringList(value)
				s.Mark(key)
			}
		case "allOf", "additionalProperties", "discriminator", "readOnly", "xml", "externalDocs", "example":
			s.Mark(key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// eachPair walks a mapping node in document order. Non-mapping nodes are treated as empty.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	node = resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolve(node.Content[i]).Value
		if err := fn(key, resolve(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func stringList(node *yaml.Node) []string {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	result := make([]string, 0, len(node.Content))
	for _, n := range node.Content {
		result = append(result, resolve(n).Value)
	}
	return result
}

func anyList(node *yaml.Node) ([]any, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence")
	}
	result := make([]any, 0, len(node.Content))
	for _, n := range node.Content {
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func boolValue(node *yaml.Node) bool {
	var b bool
	if err := node.Decode(&b); err != nil {
		return false
	}
	return b
}
