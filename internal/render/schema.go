package render

import (
	"log/slog"
	"strings"

	"github.com/nieomylnieja/oasdoc/internal/markup"
	"github.com/nieomylnieja/oasdoc/internal/openapi"
	"github.com/nieomylnieja/oasdoc/internal/schema"
	"github.com/nieomylnieja/oasdoc/internal/typeinfo"
)

// LeafValue describes the constraints of a named property which are not covered by its description.
// Primitive properties produce an empty fragment.
func (r *Renderer) LeafValue(property string, s *schema.Schema) markup.Fragment {
	switch s.Type {
	case "array":
		prefix := markup.Fragment{
			markup.Text("Each item in the "),
			markup.Code(property),
			markup.Text(" array MUST be "),
		}
		return markup.Concat(prefix, r.arrayItems(s.Items))
	case "object":
		prefix := markup.Fragment{
			markup.Text("The "),
			markup.Code(property),
			markup.Text(" object MUST be "),
		}
		return markup.Concat(prefix, r.ObjectFragment(s))
	case "string", "integer", "number", "boolean":
		return markup.Fragment{}
	}
	if s.Kind.IsComposition() {
		prefix := markup.Fragment{
			markup.Text("The "),
			markup.Code(property),
			markup.Text(" value MUST be "),
		}
		return markup.Concat(prefix, r.ObjectFragment(s))
	}
	return r.renderError(s)
}

func (r *Renderer) arrayItems(items *schema.Schema) markup.Fragment {
	switch {
	case items == nil:
		return r.ObjectFragment(items)
	case items.Kind == schema.KindString:
		return markup.Plain("a string.")
	case items.Kind.IsPrimitive():
		return markup.Plain("a " + items.Type + ":")
	default:
		return r.ObjectFragment(items)
	}
}

// ObjectFragment describes the schema.
// Composition keywords are checked before the type, in the order: anyOf, allOf, oneOf.
// Shapes which are none of these, nor an object, are printed verbatim.
func (r *Renderer) ObjectFragment(s *schema.Schema) markup.Fragment {
	if s == nil {
		return markup.Fragment{markup.Pre("null")}
	}
	switch s.Kind {
	case schema.KindAnyOf:
		alternatives := make([]markup.Fragment, 0, len(s.AnyOf))
		for _, alt := range s.AnyOf {
			alternatives = append(alternatives, r.ObjectFragment(alt))
		}
		return markup.Join(alternatives, " or ")
	case schema.KindAllOf:
		return r.ObjectFragment(schema.MergeProperties(s.AllOf))
	case schema.KindOneOf:
		alternatives := make([]markup.Fragment, 0, len(s.OneOf))
		for _, alt := range s.OneOf {
			alternatives = append(alternatives, r.oneOfMember(alt))
		}
		return markup.Concat(markup.Plain(" either "), markup.Join(alternatives, " or "))
	case schema.KindObject:
		return r.objectWithProperties(s)
	default:
		return markup.Fragment{markup.Pre(s.Pretty())}
	}
}

func (r *Renderer) oneOfMember(s *schema.Schema) markup.Fragment {
	// The declared type is checked first, a sibling composition keyword does not change the member's phrase.
	switch s.Type {
	case "string":
		return markup.Plain("a string")
	case "array":
		text := "an array"
		if s.Items != nil {
			text += " of " + typeinfo.Get(s).Items + "(s)"
		}
		return markup.Plain(text)
	case "integer", "number", "boolean":
		return markup.Plain(typeinfo.Article(s.Type))
	default:
		return r.ObjectFragment(s)
	}
}

func (r *Renderer) objectWithProperties(s *schema.Schema) markup.Fragment {
	if !s.HasProperties() {
		if s.Description == "" {
			return markup.Plain("an object")
		}
		return markup.Plain(strings.TrimSuffix(s.Description, ".") + " (an object)")
	}
	list := markup.DefList{Items: make([]markup.DefItem, 0, len(s.Properties))}
	for _, p := range s.Properties {
		list.Items = append(list.Items, markup.DefItem{
			Term: markup.Fragment{
				markup.Code(p.Name),
				markup.Text(" " + typeinfo.Get(p.Schema).Label()),
			},
			Definition: r.propertyDefinition(p),
		})
	}
	return markup.Fragment{markup.Text("an object of the following form: "), list}
}

func (r *Renderer) propertyDefinition(p schema.Property) markup.Fragment {
	leaf := r.LeafValue(p.Name, p.Schema)
	switch {
	case p.Schema.Description == "":
		return leaf
	case len(leaf) == 0:
		return markup.Plain(p.Schema.Description)
	default:
		return markup.Concat(markup.Plain(p.Schema.Description+" "), leaf)
	}
}

// ResponseBody describes the schema of every media type of a response, in declared order.
// An absent content produces an empty fragment.
func (r *Renderer) ResponseBody(content []*openapi.MediaType) markup.Fragment {
	if len(content) == 0 {
		return markup.Fragment{}
	}
	var body markup.Fragment
	for _, mt := range content {
		body = body.Append(markup.Italic("content-type: "+mt.Type), markup.Break{})
		if mt.Schema == nil {
			continue
		}
		if mt.Schema.Type == "array" {
			body = markup.Concat(body,
				markup.Plain("Each item in the array MUST be "),
				r.ObjectFragment(mt.Schema.Items))
		} else {
			body = markup.Concat(body, r.ObjectFragment(mt.Schema))
		}
	}
	return markup.Fragment{markup.Section{Style: responseBodyStyle, Content: body}}
}

const responseBodyStyle = "font-size: 0.75rem"

// renderError is the fallback for schemas whose shape cannot be described.
func (r *Renderer) renderError(s *schema.Schema) markup.Fragment {
	pretty := s.Pretty()
	r.logger.Warn("value rendering error", slog.String("schema", pretty))
	return markup.Fragment{markup.Text("RENDER ERROR: "), markup.Pre(pretty)}
}
