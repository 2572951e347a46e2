// Package assemble fills the marked regions of an HTML document with rendered documentation.
package assemble

import (
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nieomylnieja/oasdoc/internal/openapi"
	"github.com/nieomylnieja/oasdoc/internal/render"
)

const (
	pathsAttribute    = "data-api-path"
	endpointAttribute = "data-api-endpoint"
)

// Selectors holds the class names marking each kind of region.
type Selectors struct {
	// SummaryTable marks tables listing endpoints with their summaries.
	SummaryTable string
	// CallerTable marks tables listing endpoints with their expected callers.
	CallerTable string
	// DetailSection marks elements describing a single endpoint.
	DetailSection string
}

// DefaultSelectors returns the class names used when none are configured.
func DefaultSelectors() Selectors {
	return Selectors{
		SummaryTable:  "api-summary-table",
		CallerTable:   "api-component-table",
		DetailSection: "api-detail",
	}
}

// Assembler owns the document being filled, renderers only produce detached fragments.
type Assembler struct {
	renderer  *render.Renderer
	selectors Selectors
	logger    *slog.Logger
}

func New(renderer *render.Renderer, selectors Selectors, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		renderer:  renderer,
		selectors: selectors,
		logger:    logger,
	}
}

// Render parses the HTML document from r, fills it and writes it to w.
func (a *Assembler) Render(r io.Reader, w io.Writer, apis []*openapi.Document) error {
	doc, err := html.Parse(r)
	if err != nil {
		return errors.Wrap(err, "failed to parse HTML document")
	}
	a.Assemble(doc, apis)
	if err = html.Render(w, doc); err != nil {
		return errors.Wrap(err, "failed to write HTML document")
	}
	return nil
}

// Assemble fills every marked region of the document.
// Summary tables are filled first, then detail sections, then caller tables,
// each kind in document order.
func (a *Assembler) Assemble(doc *html.Node, apis []*openapi.Document) {
	for _, table := range findElements(doc, a.tableMatcher(a.selectors.SummaryTable)) {
		head, body := a.renderer.SummaryTable(apis, splitPaths(table)).Sections()
		table.AppendChild(head)
		table.AppendChild(body)
	}
	for _, section := range findElements(doc, a.detailMatcher()) {
		verb, path, ok := splitEndpoint(attribute(section, endpointAttribute))
		if !ok {
			a.logger.Warn("malformed endpoint attribute",
				slog.String("value", attribute(section, endpointAttribute)))
			continue
		}
		for _, node := range a.renderer.EndpointDetail(apis, verb, path).Nodes() {
			section.AppendChild(node)
		}
	}
	for _, table := range findElements(doc, a.tableMatcher(a.selectors.CallerTable)) {
		head, body := a.renderer.CallerTable(apis, splitPaths(table)).Sections()
		table.AppendChild(head)
		table.AppendChild(body)
	}
}

func (a *Assembler) tableMatcher(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.DataAtom == atom.Table && hasClass(n, class) && hasAttribute(n, pathsAttribute)
	}
}

func (a *Assembler) detailMatcher() func(*html.Node) bool {
	return func(n *html.Node) bool {
		return hasClass(n, a.selectors.DetailSection) && hasAttribute(n, endpointAttribute)
	}
}

// findElements returns the matching elements in document order.
// All matches are collected before the caller modifies the tree.
func findElements(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// splitPaths returns the whitespace separated paths of the region.
func splitPaths(n *html.Node) []string {
	return strings.Fields(attribute(n, pathsAttribute))
}

// splitEndpoint splits "<verb> <path>".
func splitEndpoint(value string) (verb, path string, ok bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func hasClass(n *html.Node, class string) bool {
	return class != "" && slices.Contains(strings.Fields(attribute(n, "class")), class)
}

func hasAttribute(n *html.Node, key string) bool {
	return slices.ContainsFunc(n.Attr, func(attr html.Attribute) bool {
		return attr.Namespace == "" && attr.Key == key
	})
}

func attribute(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
