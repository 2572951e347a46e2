// Package markup defines the small tree of typed nodes the documentation is built from.
//
// Renderers return [Fragment] values instead of writing markup strings,
// which keeps them free of escaping concerns and makes their output comparable in tests.
// A fragment is turned into HTML with [Fragment.Nodes] or [Fragment.HTML].
package markup

import (
	"strings"
)

// Node is a single element of a [Fragment].
type Node interface {
	node()
}

// Fragment is an ordered sequence of inline and block nodes.
type Fragment []Node

type (
	// Text is plain text.
	Text string
	// Code is text displayed as code.
	Code string
	// Pre is preformatted text.
	Pre string
	// Italic is emphasized text.
	Italic string
	// Span is text wrapped in its own inline element.
	Span string
	// Break is a line break.
	Break struct{}
)

// Paragraph is a block of inline content.
type Paragraph struct {
	Content Fragment
}

// Section groups content, optionally with an inline style.
type Section struct {
	Style   string
	Content Fragment
}

// DefList is a definition list.
type DefList struct {
	Items []DefItem
}

// DefItem is a term and its definition.
type DefItem struct {
	Term       Fragment
	Definition Fragment
}

// Table is a table with a single header row.
type Table struct {
	Class  string
	Header []string
	Rows   []Row
}

// Row is a table body row.
type Row struct {
	Cells []Cell
}

// Cell is a table body cell.
type Cell struct {
	Style   string
	Content Fragment
}

func (Text) node()      {}
func (Code) node()      {}
func (Pre) node()       {}
func (Italic) node()    {}
func (Span) node()      {}
func (Break) node()     {}
func (Paragraph) node() {}
func (Section) node()   {}
func (DefList) node()   {}
func (Table) node()     {}

// Append returns the fragment extended with nodes.
// Adjacent [Text] nodes are merged and empty ones dropped,
// so that fragments built from different pieces of the same text compare equal.
// The receiver is never modified.
func (f Fragment) Append(nodes ...Node) Fragment {
	result := make(Fragment, len(f), len(f)+len(nodes))
	copy(result, f)
	for _, n := range nodes {
		text, isText := n.(Text)
		if isText && text == "" {
			continue
		}
		if isText && len(result) > 0 {
			if last, ok := result[len(result)-1].(Text); ok {
				result[len(result)-1] = last + text
				continue
			}
		}
		result = append(result, n)
	}
	return result
}

// Concat joins the fragments, merging text at their boundaries.
func Concat(fragments ...Fragment) Fragment {
	var result Fragment
	for _, frag := range fragments {
		result = result.Append(frag...)
	}
	return result
}

// Join joins the fragments, placing sep between them.
func Join(fragments []Fragment, sep string) Fragment {
	var result Fragment
	for i, frag := range fragments {
		if i > 0 {
			result = result.Append(Text(sep))
		}
		result = result.Append(frag...)
	}
	return result
}

// Plain returns a fragment holding only the given text.
func Plain(s string) Fragment {
	return Fragment{}.Append(Text(s))
}

// PlainText returns the textual content of the fragment.
// Code is wrapped in backticks, blocks and rows end with a newline,
// definitions and cells are separated from their terms with " | ".
func (f Fragment) PlainText() string {
	var sb strings.Builder
	writePlainText(&sb, f)
	return sb.String()
}

func writePlainText(sb *strings.Builder, f Fragment) {
	for _, n := range f {
		switch n := n.(type) {
		case Text:
			sb.WriteString(string(n))
		case Code:
			sb.WriteString("`" + string(n) + "`")
		case Pre:
			sb.WriteString(string(n))
		case Italic:
			sb.WriteString(string(n))
		case Span:
			sb.WriteString(string(n))
		case Break:
			sb.WriteString("\n")
		case Paragraph:
			writePlainText(sb, n.Content)
			sb.WriteString("\n")
		case Section:
			writePlainText(sb, n.Content)
		case DefList:
			for _, item := range n.Items {
				sb.WriteString("\n")
				writePlainText(sb, item.Term)
				sb.WriteString(" | ")
				writePlainText(sb, item.Definition)
			}
		case Table:
			sb.WriteString(strings.Join(n.Header, " | ") + "\n")
			for _, row := range n.Rows {
				for i, cell := range row.Cells {
					if i > 0 {
						sb.WriteString(" | ")
					}
					writePlainText(sb, cell.Content)
				}
				sb.WriteString("\n")
			}
		}
	}
}
