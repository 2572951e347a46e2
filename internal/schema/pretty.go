package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pretty returns the schema's source node as indented JSON, keeping the declared key order.
func (s *Schema) Pretty() string {
	if s == nil {
		return "null"
	}
	return Pretty(s.raw)
}

// Pretty encodes the node as JSON indented with two spaces.
// Unlike encoding/json with a map, the declared key order is kept.
func Pretty(node *yaml.Node) string {
	var compact bytes.Buffer
	writeJSON(&compact, Unwrap(node))
	var indented bytes.Buffer
	if err := json.Indent(&indented, compact.Bytes(), "", "  "); err != nil {
		return compact.String()
	}
	return indented.String()
}

func writeJSON(buf *bytes.Buffer, node *yaml.Node) {
	node = Unwrap(node)
	if node == nil {
		buf.WriteString("null")
		return
	}
	switch node.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, node.Content[i].Value)
			buf.WriteByte(':')
			writeJSON(buf, node.Content[i+1])
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, item)
		}
		buf.WriteByte(']')
	default:
		writeScalar(buf, node)
	}
}

func writeScalar(buf *bytes.Buffer, node *yaml.Node) {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		switch v := strings.ToLower(node.Value); v {
		case "true", "false":
			buf.WriteString(v)
		default:
			writeString(buf, node.Value)
		}
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			buf.WriteString(node.Value)
		} else {
			writeString(buf, node.Value)
		}
	default:
		writeString(buf, node.Value)
	}
}

func writeString(buf *bytes.Buffer, value string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(value)
	// Encode terminates the value with a newline.
	buf.Truncate(buf.Len() - 1)
}
