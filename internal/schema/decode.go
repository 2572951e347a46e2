package schema

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode maps a dereferenced schema node onto a [Schema].
// It never fails, shapes it does not understand decode to [KindUnknown]
// and keep the node so that it can be printed verbatim.
func Decode(node *yaml.Node) *Schema {
	node = Unwrap(node)
	s := &Schema{raw: node}
	if node == nil || node.Kind != yaml.MappingNode {
		return s
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, Unwrap(node.Content[i+1])
		if value == nil {
			continue
		}
		switch key {
		case "type":
			s.Type = decodeType(value)
		case "description":
			if value.Kind == yaml.ScalarNode {
				s.Description = strings.TrimSpace(value.Value)
			}
		case "properties":
			s.Properties = decodeProperties(value)
		case "items":
			s.Items = Decode(value)
		case "anyOf":
			s.AnyOf = decodeList(value)
		case "allOf":
			s.AllOf = decodeList(value)
		case "oneOf":
			s.OneOf = decodeList(value)
		case "$ref":
			s.Ref = value.Value
		}
	}
	s.Kind = kindOf(s)
	return s
}

// Unwrap strips document and alias indirections from the node.
func Unwrap(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

func kindOf(s *Schema) Kind {
	switch {
	case len(s.AnyOf) > 0:
		return KindAnyOf
	case len(s.AllOf) > 0:
		return KindAllOf
	case len(s.OneOf) > 0:
		return KindOneOf
	}
	switch s.Type {
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "string":
		return KindString
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "boolean":
		return KindBoolean
	default:
		return KindUnknown
	}
}

// decodeType handles both the scalar form and the list form of the "type" keyword.
// For the list form the first type other than "null" is used.
func decodeType(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item = Unwrap(item); item != nil && item.Value != "null" {
				return item.Value
			}
		}
	}
	return ""
}

func decodeProperties(node *yaml.Node) []Property {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	properties := make([]Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		properties = append(properties, Property{
			Name:   node.Content[i].Value,
			Schema: Decode(node.Content[i+1]),
		})
	}
	return properties
}

func decodeList(node *yaml.Node) []*Schema {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil
	}
	list := make([]*Schema, 0, len(node.Content))
	for _, item := range node.Content {
		list = append(list, Decode(item))
	}
	return list
}
