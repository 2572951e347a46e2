package markup

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Nodes converts the fragment into detached HTML nodes.
func (f Fragment) Nodes() []*html.Node {
	nodes := make([]*html.Node, 0, len(f))
	for _, n := range f {
		nodes = append(nodes, toHTML(n))
	}
	return nodes
}

// HTML serializes the fragment.
func (f Fragment) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range f.Nodes() {
		if err := html.Render(&buf, n); err != nil {
			return "", errors.Wrap(err, "failed to render HTML fragment")
		}
	}
	return buf.String(), nil
}

// Sections returns the table's head and body elements,
// which can be attached to an already existing table element.
func (t Table) Sections() (head, body *html.Node) {
	head = Element(atom.Thead)
	headerRow := Element(atom.Tr)
	for _, title := range t.Header {
		headerRow.AppendChild(elementWithText(atom.Th, title))
	}
	head.AppendChild(headerRow)

	body = Element(atom.Tbody)
	for _, row := range t.Rows {
		tr := Element(atom.Tr)
		for _, cell := range row.Cells {
			td := Element(atom.Td, attributes("style", cell.Style)...)
			appendFragment(td, cell.Content)
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	return head, body
}

// Element creates a detached element node.
func Element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

// TextNode creates a detached text node.
func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func toHTML(n Node) *html.Node {
	switch n := n.(type) {
	case Text:
		return TextNode(string(n))
	case Code:
		return elementWithText(atom.Code, string(n))
	case Pre:
		return elementWithText(atom.Pre, string(n))
	case Italic:
		return elementWithText(atom.I, string(n))
	case Span:
		return elementWithText(atom.Span, string(n))
	case Break:
		return Element(atom.Br)
	case Paragraph:
		p := Element(atom.P)
		appendFragment(p, n.Content)
		return p
	case Section:
		section := Element(atom.Section, attributes("style", n.Style)...)
		appendFragment(section, n.Content)
		return section
	case DefList:
		dl := Element(atom.Dl)
		for _, item := range n.Items {
			dt := Element(atom.Dt)
			appendFragment(dt, item.Term)
			dd := Element(atom.Dd)
			appendFragment(dd, item.Definition)
			dl.AppendChild(dt)
			dl.AppendChild(dd)
		}
		return dl
	case Table:
		table := Element(atom.Table, attributes("class", n.Class)...)
		head, body := n.Sections()
		table.AppendChild(head)
		table.AppendChild(body)
		return table
	default:
		return TextNode("")
	}
}

func appendFragment(parent *html.Node, f Fragment) {
	for _, child := range f.Nodes() {
		parent.AppendChild(child)
	}
}

func elementWithText(a atom.Atom, s string) *html.Node {
	el := Element(a)
	el.AppendChild(TextNode(s))
	return el
}

// attributes returns a single attribute list, or nothing if the value is empty.
func attributes(key, value string) []html.Attribute {
	if value == "" {
		return nil
	}
	return []html.Attribute{{Key: key, Val: value}}
}
