package render

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oasdoc/internal/markup"
	"github.com/nieomylnieja/oasdoc/internal/schema"
	"github.com/nieomylnieja/oasdoc/internal/typeinfo"
)

// tableEntry is a single row of a property table.
// It holds either a property schema or, for composition keywords, the list of member schemas.
// A whole entry describes the table's own schema, which has neither properties nor composition keywords.
type tableEntry struct {
	name    string
	schema  *schema.Schema
	members []*schema.Schema
	whole   bool
}

// PropertyTable renders the schema of a request body as a table with a row per property.
// When the schema has no "properties" keyword, its composition keywords
// (allOf, anyOf, oneOf) become the rows instead, in declared order.
// A schema with neither is rendered as a single row describing the schema itself.
// Hidden properties, "example" at least, are skipped.
func (r *Renderer) PropertyTable(s *schema.Schema) markup.Table {
	table := markup.Table{
		Class:  tableClass,
		Header: []string{"Property", "Description"},
	}
	for _, entry := range r.tableEntries(s) {
		label, value := r.tableRow(entry)
		table.Rows = append(table.Rows, markup.Row{Cells: []markup.Cell{
			{Style: "vertical-align: top;", Content: label},
			{Content: value},
		}})
	}
	return table
}

func (r *Renderer) tableEntries(s *schema.Schema) []tableEntry {
	if s == nil {
		return nil
	}
	var entries []tableEntry
	if s.Properties != nil {
		for _, p := range s.Properties {
			entries = append(entries, tableEntry{name: p.Name, schema: p.Schema})
		}
	} else if entries = compositionEntries(s); len(entries) == 0 {
		return []tableEntry{{schema: s, whole: true}}
	}
	return slices.DeleteFunc(entries, func(e tableEntry) bool {
		return slices.Contains(r.hiddenProperties, e.name)
	})
}

// compositionEntries lists the composition keywords of the schema in the order they were declared.
func compositionEntries(s *schema.Schema) []tableEntry {
	members := map[string][]*schema.Schema{
		"allOf": s.AllOf,
		"anyOf": s.AnyOf,
		"oneOf": s.OneOf,
	}
	var entries []tableEntry
	raw := s.Raw()
	if raw == nil || raw.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(raw.Content); i += 2 {
		key := raw.Content[i].Value
		if list, ok := members[key]; ok && len(list) > 0 {
			entries = append(entries, tableEntry{name: key, members: list})
		}
	}
	return entries
}

func (r *Renderer) tableRow(entry tableEntry) (label, value markup.Fragment) {
	if entry.members != nil {
		return r.compositionRow(entry)
	}
	if entry.whole {
		return r.wholeSchemaRow(entry.schema)
	}
	s := entry.schema
	label = markup.Fragment{markup.Code(entry.name)}
	switch s.Type {
	case "object":
		return label.Append(markup.Text(" [object]")), r.ObjectFragment(s)
	case "array":
		return label.Append(markup.Text(" [array]")),
			markup.Concat(markup.Plain("An array where each item MUST be "), r.ObjectFragment(s.Items))
	case "string", "boolean", "integer", "number":
		return label.Append(markup.Text(" [" + s.Type + "]")), markup.Plain(s.Description)
	}
	if s.Kind.IsComposition() {
		return label.Append(markup.Text(" [" + s.Kind.String() + "]")), r.ObjectFragment(s)
	}
	return label, r.renderError(s)
}

// wholeSchemaRow describes a schema the table has no rows for.
// Arrays are described by their items, any other shape degrades to a render error.
func (r *Renderer) wholeSchemaRow(s *schema.Schema) (label, value markup.Fragment) {
	label = markup.Plain(typeinfo.Get(s).Label())
	if s.Type == "array" {
		return label, markup.Concat(markup.Plain("An array where each item MUST be "), r.ObjectFragment(s.Items))
	}
	return label, r.renderError(s)
}

// compositionRow renders the members of a composition keyword joined with a connective,
// "and" for allOf, "or" otherwise.
func (r *Renderer) compositionRow(entry tableEntry) (label, value markup.Fragment) {
	label = markup.Fragment{markup.Code(entry.name)}
	connective := " or "
	if entry.name == "allOf" {
		connective = " and "
	}
	parts := make([]markup.Fragment, 0, len(entry.members))
	for _, member := range entry.members {
		parts = append(parts, r.ObjectFragment(member))
	}
	if len(parts) > 1 {
		if entry.name == "allOf" {
			label = markup.Plain("All of")
		} else {
			label = markup.Plain("Any of")
		}
	}
	return label, markup.Join(parts, connective)
}

const tableClass = "simple"
