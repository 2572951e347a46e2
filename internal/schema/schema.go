// Package schema models the subset of JSON Schema which is rendered into documentation.
//
// A [Schema] is a tagged union. Its [Kind] is decided once, when the node is decoded,
// using a fixed priority: anyOf, allOf, oneOf, then the declared type.
// Composition keywords always win over a sibling type keyword, so a node declared as
// both "type: object" and "anyOf" is an [KindAnyOf] node.
package schema

import (
	"gopkg.in/yaml.v3"
)

// Kind is the discriminant of a [Schema].
type Kind int

const (
	KindUnknown Kind = iota
	KindAnyOf
	KindAllOf
	KindOneOf
	KindObject
	KindArray
	KindString
	KindInteger
	KindNumber
	KindBoolean
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindAnyOf:   "anyOf",
	KindAllOf:   "allOf",
	KindOneOf:   "oneOf",
	KindObject:  "object",
	KindArray:   "array",
	KindString:  "string",
	KindInteger: "integer",
	KindNumber:  "number",
	KindBoolean: "boolean",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// IsComposition reports whether the kind is one of the composition keywords.
func (k Kind) IsComposition() bool {
	return k == KindAnyOf || k == KindAllOf || k == KindOneOf
}

// IsPrimitive reports whether the kind is a scalar JSON type.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindInteger, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// Schema is an immutable, fully dereferenced schema node.
type Schema struct {
	Kind Kind
	// Type is the declared "type" keyword, it may be empty or hold a value
	// which is not a recognized JSON type.
	Type        string
	Description string
	// Properties are kept in declared order.
	// A nil slice means the "properties" keyword was absent.
	Properties []Property
	Items      *Schema
	AnyOf      []*Schema
	AllOf      []*Schema
	OneOf      []*Schema
	// Ref is set when the node is a reference which could not be inlined (cycle).
	Ref string

	raw *yaml.Node
}

// Property is a single named entry of the "properties" keyword.
type Property struct {
	Name   string
	Schema *Schema
}

// HasProperties reports whether the schema declares at least one property.
func (s *Schema) HasProperties() bool {
	return s != nil && len(s.Properties) > 0
}

// Property returns the named property schema.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Alternatives returns the members of the composition keyword matching the schema's [Kind].
func (s *Schema) Alternatives() []*Schema {
	switch s.Kind {
	case KindAnyOf:
		return s.AnyOf
	case KindAllOf:
		return s.AllOf
	case KindOneOf:
		return s.OneOf
	default:
		return nil
	}
}

// Raw returns the node the schema was decoded from.
func (s *Schema) Raw() *yaml.Node {
	return s.raw
}

// MergeProperties merges the properties of all schemas into a single object schema.
// Properties are kept in the order they were first seen,
// a later schema's property replaces an earlier one with the same name.
func MergeProperties(schemas []*Schema) *Schema {
	merged := &Schema{
		Kind:       KindObject,
		Type:       "object",
		Properties: []Property{},
	}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, p := range s.Properties {
			merged.setProperty(p)
		}
	}
	merged.raw = mergedNode(merged.Properties)
	return merged
}

func (s *Schema) setProperty(p Property) {
	for i := range s.Properties {
		if s.Properties[i].Name == p.Name {
			s.Properties[i].Schema = p.Schema
			return
		}
	}
	s.Properties = append(s.Properties, p)
}

func mergedNode(properties []Property) *yaml.Node {
	props := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range properties {
		value := p.Schema.Raw()
		if value == nil {
			value = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		props.Content = append(props.Content, stringNode(p.Name), value)
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			stringNode("type"), stringNode("object"),
			stringNode("properties"), props,
		},
	}
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
