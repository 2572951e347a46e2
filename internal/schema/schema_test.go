package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustDecode(t *testing.T, src string) *Schema {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return Decode(&node)
}

func TestDecode_Kind(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected Kind
	}{
		{name: "object", src: `type: object`, expected: KindObject},
		{name: "array", src: `type: array`, expected: KindArray},
		{name: "string", src: `type: string`, expected: KindString},
		{name: "integer", src: `type: integer`, expected: KindInteger},
		{name: "number", src: `type: number`, expected: KindNumber},
		{name: "boolean", src: `type: boolean`, expected: KindBoolean},
		{name: "unknown type", src: `type: unknown-thing`, expected: KindUnknown},
		{name: "no type", src: `description: foo`, expected: KindUnknown},
		{name: "type list", src: `type: [null, string]`, expected: KindString},
		{name: "anyOf wins over type", src: "type: object\nanyOf: [{type: string}]", expected: KindAnyOf},
		{name: "anyOf wins over allOf", src: "allOf: [{type: string}]\nanyOf: [{type: string}]", expected: KindAnyOf},
		{name: "allOf wins over oneOf", src: "oneOf: [{type: string}]\nallOf: [{type: string}]", expected: KindAllOf},
		{name: "oneOf wins over type", src: "type: array\noneOf: [{type: string}]", expected: KindOneOf},
		{name: "empty composition is ignored", src: "type: string\nanyOf: []", expected: KindString},
		{name: "scalar node", src: `true`, expected: KindUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mustDecode(t, tc.src).Kind)
		})
	}
}

func TestDecode_PropertiesOrder(t *testing.T) {
	s := mustDecode(t, `
type: object
description: "A thing.  "
properties:
  zeta: {type: string}
  alpha: {type: integer}
  mid:
    type: array
    items: {type: boolean}
`)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, "zeta", s.Properties[0].Name)
	assert.Equal(t, "alpha", s.Properties[1].Name)
	assert.Equal(t, "mid", s.Properties[2].Name)
	assert.Equal(t, "A thing.", s.Description)
	mid, ok := s.Property("mid")
	require.True(t, ok)
	assert.Equal(t, KindArray, mid.Kind)
	assert.Equal(t, KindBoolean, mid.Items.Kind)
	_, ok = s.Property("missing")
	assert.False(t, ok)
}

func TestDecode_FollowsAliases(t *testing.T) {
	s := mustDecode(t, `
definitions:
  name: &name {type: string, description: Name.}
type: object
properties:
  first: *name
`)
	first, ok := s.Property("first")
	require.True(t, ok)
	assert.Equal(t, KindString, first.Kind)
	assert.Equal(t, "Name.", first.Description)
}

func TestMergeProperties(t *testing.T) {
	a := mustDecode(t, `{properties: {a: {type: string, description: X}, b: {type: boolean}}}`)
	b := mustDecode(t, `{properties: {c: {type: integer}, a: {type: string, description: Y}}}`)

	merged := MergeProperties([]*Schema{a, b})

	assert.Equal(t, KindObject, merged.Kind)
	require.Len(t, merged.Properties, 3)
	assert.Equal(t, []string{"a", "b", "c"}, propertyNames(merged))
	prop, _ := merged.Property("a")
	assert.Equal(t, "Y", prop.Description)
	assert.Equal(t, `{
  "type": "object",
  "properties": {
    "a": {
      "type": "string",
      "description": "Y"
    },
    "b": {
      "type": "boolean"
    },
    "c": {
      "type": "integer"
    }
  }
}`, merged.Pretty())
}

func TestMergeProperties_NoProperties(t *testing.T) {
	merged := MergeProperties([]*Schema{mustDecode(t, `type: string`)})
	assert.False(t, merged.HasProperties())
}

func TestPretty(t *testing.T) {
	s := mustDecode(t, `
type: unknown-thing
enum: [1, 2.5, true, null, "<b>"]
nested: {z: 1, a: 0x10}
`)
	assert.Equal(t, `{
  "type": "unknown-thing",
  "enum": [
    1,
    2.5,
    true,
    null,
    "<b>"
  ],
  "nested": {
    "z": 1,
    "a": "0x10"
  }
}`, s.Pretty())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "anyOf", KindAnyOf.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.True(t, KindOneOf.IsComposition())
	assert.False(t, KindObject.IsComposition())
	assert.True(t, KindInteger.IsPrimitive())
	assert.False(t, KindArray.IsPrimitive())
}

func propertyNames(s *Schema) []string {
	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	return names
}
