package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oasdoc/internal/markup"
	"github.com/nieomylnieja/oasdoc/internal/openapi"
	"github.com/nieomylnieja/oasdoc/internal/schema"
)

func mustSchema(t *testing.T, src string) *schema.Schema {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return schema.Decode(&node)
}

func newTestRenderer(opts ...Option) (*Renderer, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(append([]Option{WithLogger(logger)}, opts...)...), &logs
}

func TestRenderer_LeafValue(t *testing.T) {
	r, _ := newTestRenderer()

	t.Run("array of strings", func(t *testing.T) {
		actual := r.LeafValue("tags", mustSchema(t, `{type: array, items: {type: string}}`))
		assert.Equal(t, markup.Fragment{
			markup.Text("Each item in the "),
			markup.Code("tags"),
			markup.Text(" array MUST be a string."),
		}, actual)
		assert.Equal(t, "Each item in the `tags` array MUST be a string.", actual.PlainText())
	})
	t.Run("array of primitives", func(t *testing.T) {
		actual := r.LeafValue("ids", mustSchema(t, `{type: array, items: {type: integer}}`))
		assert.Equal(t, "Each item in the `ids` array MUST be a integer:", actual.PlainText())
	})
	t.Run("array of objects", func(t *testing.T) {
		actual := r.LeafValue("items", mustSchema(t, `{type: array, items: {type: object, description: An item.}}`))
		assert.Equal(t, "Each item in the `items` array MUST be An item (an object)", actual.PlainText())
	})
	t.Run("object", func(t *testing.T) {
		actual := r.LeafValue("options", mustSchema(t, `type: object`))
		assert.Equal(t, "The `options` object MUST be an object", actual.PlainText())
	})
	t.Run("object with anyOf", func(t *testing.T) {
		actual := r.LeafValue("proof", mustSchema(t, `
type: object
anyOf:
  - {type: object, description: A proof.}
  - {type: object, description: A list of proofs.}
`))
		assert.Equal(t, "The `proof` object MUST be A proof (an object) or A list of proofs (an object)", actual.PlainText())
	})
	t.Run("composition without type", func(t *testing.T) {
		actual := r.LeafValue("id", mustSchema(t, `oneOf: [{type: string}, {type: object}]`))
		assert.Equal(t, "The `id` value MUST be  either a string or an object", actual.PlainText())
	})
	for _, typ := range []string{"string", "integer", "number", "boolean"} {
		t.Run(typ, func(t *testing.T) {
			assert.Empty(t, r.LeafValue("p", mustSchema(t, "type: "+typ)))
		})
	}
	t.Run("unknown type", func(t *testing.T) {
		r, logs := newTestRenderer()
		s := mustSchema(t, `type: unknown-thing`)
		actual := r.LeafValue("p", s)
		assert.Equal(t, markup.Fragment{
			markup.Text("RENDER ERROR: "),
			markup.Pre("{\n  \"type\": \"unknown-thing\"\n}"),
		}, actual)
		assert.Contains(t, logs.String(), "value rendering error")
	})
}

func TestRenderer_ObjectFragment(t *testing.T) {
	r, _ := newTestRenderer()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "object without properties and description",
			src:      `type: object`,
			expected: "an object",
		},
		{
			name:     "object with description",
			src:      `{type: object, description: Options for issuing.}`,
			expected: "Options for issuing (an object)",
		},
		{
			name:     "only a single trailing period is stripped",
			src:      `{type: object, description: Etc..}`,
			expected: "Etc. (an object)",
		},
		{
			name:     "object with empty properties",
			src:      `{type: object, properties: {}}`,
			expected: "an object",
		},
		{
			name: "anyOf",
			src: `
anyOf:
  - {type: object, description: A.}
  - {type: object, description: B.}
  - {type: object, description: C.}
`,
			expected: "A (an object) or B (an object) or C (an object)",
		},
		{
			name: "anyOf wins over object type",
			src: `
type: object
description: Ignored.
anyOf:
  - {type: object, description: First.}
  - {type: object}
`,
			expected: "First (an object) or an object",
		},
		{
			name: "oneOf",
			src: `
oneOf:
  - type: string
  - type: object
  - {type: array, items: {type: integer}}
  - type: array
  - type: boolean
  - type: integer
`,
			expected: " either a string or an object or an array of integer(s) or an array or a boolean or an integer",
		},
		{
			name: "oneOf member with a composition keyword is described by its type",
			src: `
oneOf:
  - type: string
    anyOf: [{type: object}]
  - {type: array, items: {type: string}, allOf: [{type: object}]}
  - type: object
`,
			expected: " either a string or an array of string(s) or an object",
		},
		{
			name:     "allOf without properties",
			src:      `allOf: [{type: object}, {type: string}]`,
			expected: "an object",
		},
		{
			name:     "unmatched shape",
			src:      `type: string`,
			expected: "{\n  \"type\": \"string\"\n}",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.ObjectFragment(mustSchema(t, tc.src)).PlainText())
		})
	}
}

func TestRenderer_ObjectFragment_AnyOfConnectives(t *testing.T) {
	r, _ := newTestRenderer()
	for n := 1; n <= 5; n++ {
		var sb strings.Builder
		sb.WriteString("anyOf:\n")
		for range n {
			sb.WriteString("  - {type: object}\n")
		}
		actual := r.ObjectFragment(mustSchema(t, sb.String())).PlainText()
		assert.Equal(t, n-1, strings.Count(actual, " or "))
	}
}

func TestRenderer_ObjectFragment_AllOfLastWriteWins(t *testing.T) {
	r, _ := newTestRenderer()
	s := mustSchema(t, `
allOf:
  - properties:
      a: {type: string, description: X}
  - properties:
      a: {type: string, description: Y}
`)
	assert.Equal(t, markup.Fragment{
		markup.Text("an object of the following form: "),
		markup.DefList{Items: []markup.DefItem{{
			Term:       markup.Fragment{markup.Code("a"), markup.Text(" [string]")},
			Definition: markup.Fragment{markup.Text("Y")},
		}}},
	}, r.ObjectFragment(s))
}

func TestRenderer_ObjectFragment_Properties(t *testing.T) {
	r, _ := newTestRenderer()
	s := mustSchema(t, `
type: object
properties:
  id: {type: string, description: The ID.}
  tags:
    type: array
    description: Tags.
    items: {type: string}
  options: {type: object, description: Options.}
  count: {type: integer}
`)
	actual := r.ObjectFragment(s)

	assert.Equal(t, markup.Fragment{
		markup.Text("an object of the following form: "),
		markup.DefList{Items: []markup.DefItem{
			{
				Term:       markup.Fragment{markup.Code("id"), markup.Text(" [string]")},
				Definition: markup.Fragment{markup.Text("The ID.")},
			},
			{
				Term: markup.Fragment{markup.Code("tags"), markup.Text(" [array]")},
				Definition: markup.Fragment{
					markup.Text("Tags. Each item in the "),
					markup.Code("tags"),
					markup.Text(" array MUST be a string."),
				},
			},
			{
				Term: markup.Fragment{markup.Code("options"), markup.Text(" [object]")},
				Definition: markup.Fragment{
					markup.Text("Options. The "),
					markup.Code("options"),
					markup.Text(" object MUST be Options (an object)"),
				},
			},
			{
				Term:       markup.Fragment{markup.Code("count"), markup.Text(" [integer]")},
				Definition: markup.Fragment{},
			},
		}},
	}, actual)

	html, err := actual.HTML()
	require.NoError(t, err)
	assert.Equal(t, "an object of the following form: <dl>"+
		"<dt><code>id</code> [string]</dt><dd>The ID.</dd>"+
		"<dt><code>tags</code> [array]</dt><dd>Tags. Each item in the <code>tags</code> array MUST be a string.</dd>"+
		"<dt><code>options</code> [object]</dt><dd>Options. The <code>options</code> object MUST be Options (an object)</dd>"+
		"<dt><code>count</code> [integer]</dt><dd></dd>"+
		"</dl>", html)
}

func TestRenderer_ObjectFragment_Idempotent(t *testing.T) {
	r, _ := newTestRenderer()
	s := mustSchema(t, `
allOf:
  - properties:
      a: {type: array, items: {oneOf: [{type: string}, {type: object}]}}
  - properties:
      b: {anyOf: [{type: object}, {type: unknown-thing}]}
`)
	assert.Equal(t, r.ObjectFragment(s), r.ObjectFragment(s))
}

func TestRenderer_ObjectFragment_UnknownNeverPanics(t *testing.T) {
	r, _ := newTestRenderer()
	for _, src := range []string{`type: unknown-thing`, `true`, `[1, 2]`, `{}`, `{$ref: "#/loop"}`} {
		t.Run(src, func(t *testing.T) {
			s := mustSchema(t, src)
			assert.NotPanics(t, func() { r.ObjectFragment(s) })
			assert.Equal(t, markup.Fragment{markup.Pre(s.Pretty())}, r.ObjectFragment(s))
		})
	}
	assert.Equal(t, markup.Fragment{markup.Pre("null")}, r.ObjectFragment(nil))
}

func TestRenderer_ResponseBody(t *testing.T) {
	r, _ := newTestRenderer()

	t.Run("absent content", func(t *testing.T) {
		assert.Empty(t, r.ResponseBody(nil))
	})

	t.Run("media types in declared order", func(t *testing.T) {
		content := []*openapi.MediaType{
			{Type: "application/json", Schema: mustSchema(t, `{type: array, items: {type: object, description: Thing.}}`)},
			{Type: "text/plain"},
			{Type: "application/ld+json", Schema: mustSchema(t, `{type: object}`)},
		}
		assert.Equal(t, markup.Fragment{markup.Section{
			Style: "font-size: 0.75rem",
			Content: markup.Fragment{
				markup.Italic("content-type: application/json"),
				markup.Break{},
				markup.Text("Each item in the array MUST be Thing (an object)"),
				markup.Italic("content-type: text/plain"),
				markup.Break{},
				markup.Italic("content-type: application/ld+json"),
				markup.Break{},
				markup.Text("an object"),
			},
		}}, r.ResponseBody(content))
	})
}
