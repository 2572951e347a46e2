package openapi

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oasdoc/internal/schema"
)

// Document is a loaded, validated and fully dereferenced OpenAPI document.
// It is never modified after loading.
type Document struct {
	// Name is the logical name the document was loaded under, for instance "issuer".
	Name     string
	Location string
	Info     Info
	Paths    map[string]*PathItem
}

type Info struct {
	Title   string
	Version string
}

// PathItem holds the operations defined for a single path, in declared order.
type PathItem struct {
	Operations []*Operation
}

// Operation returns the operation for the given verb, the lookup is case-insensitive.
func (p *PathItem) Operation(verb string) (*Operation, bool) {
	verb = strings.ToLower(verb)
	for _, op := range p.Operations {
		if op.Verb == verb {
			return op, true
		}
	}
	return nil, false
}

type Operation struct {
	// Verb is the lowercase HTTP method.
	Verb        string
	Summary     string
	RequestBody *RequestBody
	Responses   []*Response
	// ExpectedCallers holds the "x-expectedCaller" extension.
	// It is nil when the extension is absent.
	ExpectedCallers []string
}

type RequestBody struct {
	Content []*MediaType
}

// Schema returns the "application/json" schema, or the first declared one.
func (r *RequestBody) Schema() *schema.Schema {
	if r == nil || len(r.Content) == 0 {
		return nil
	}
	for _, mt := range r.Content {
		if mt.Type == jsonMediaType {
			return mt.Schema
		}
	}
	return r.Content[0].Schema
}

type Response struct {
	// Status is the status code or a name, such as "default".
	Status      string
	Description string
	Content     []*MediaType
}

type MediaType struct {
	Type   string
	Schema *schema.Schema
}

const jsonMediaType = "application/json"

// httpVerbs lists the path item keys which hold operations.
var httpVerbs = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// decodeDocument maps a dereferenced document node onto a [Document].
func decodeDocument(name, location string, root *yaml.Node) *Document {
	doc := &Document{
		Name:     name,
		Location: location,
		Paths:    make(map[string]*PathItem),
	}
	root = schema.Unwrap(root)
	if info := lookup(root, "info"); info != nil {
		doc.Info = Info{
			Title:   scalar(lookup(info, "title")),
			Version: scalar(lookup(info, "version")),
		}
	}
	forEachPair(lookup(root, "paths"), func(path string, item *yaml.Node) {
		doc.Paths[path] = decodePathItem(item)
	})
	return doc
}

func decodePathItem(node *yaml.Node) *PathItem {
	item := &PathItem{}
	forEachPair(node, func(verb string, opNode *yaml.Node) {
		if !httpVerbs[verb] {
			return
		}
		item.Operations = append(item.Operations, decodeOperation(verb, opNode))
	})
	return item
}

func decodeOperation(verb string, node *yaml.Node) *Operation {
	op := &Operation{
		Verb:    verb,
		Summary: strings.TrimSpace(scalar(lookup(node, "summary"))),
	}
	if body := lookup(node, "requestBody"); body != nil {
		op.RequestBody = &RequestBody{Content: decodeContent(lookup(body, "content"))}
	}
	forEachPair(lookup(node, "responses"), func(status string, respNode *yaml.Node) {
		op.Responses = append(op.Responses, &Response{
			Status:      status,
			Description: strings.TrimSpace(scalar(lookup(respNode, "description"))),
			Content:     decodeContent(lookup(respNode, "content")),
		})
	})
	op.ExpectedCallers = decodeExpectedCallers(lookup(node, "x-expectedCaller"))
	return op
}

func decodeContent(node *yaml.Node) []*MediaType {
	var content []*MediaType
	forEachPair(node, func(mediaType string, mtNode *yaml.Node) {
		mt := &MediaType{Type: mediaType}
		if s := lookup(mtNode, "schema"); s != nil {
			mt.Schema = schema.Decode(s)
		}
		content = append(content, mt)
	})
	return content
}

func decodeExpectedCallers(node *yaml.Node) []string {
	switch {
	case node == nil:
		return nil
	case node.Kind == yaml.SequenceNode:
		callers := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			callers = append(callers, scalar(item))
		}
		return callers
	default:
		return []string{scalar(node)}
	}
}

// lookup returns the value stored under key in a mapping node.
func lookup(node *yaml.Node, key string) *yaml.Node {
	node = schema.Unwrap(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return schema.Unwrap(node.Content[i+1])
		}
	}
	return nil
}

// forEachPair calls fn for every key of a mapping node, in declared order.
func forEachPair(node *yaml.Node, fn func(key string, value *yaml.Node)) {
	node = schema.Unwrap(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i].Value, schema.Unwrap(node.Content[i+1]))
	}
}

func scalar(node *yaml.Node) string {
	node = schema.Unwrap(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}
