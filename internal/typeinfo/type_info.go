package typeinfo

import (
	"fmt"

	"github.com/nieomylnieja/oasdoc/internal/schema"
)

// TypeInfo stores the type information displayed next to a property.
type TypeInfo struct {
	Name  string
	Kind  string
	Items string
}

// Get returns the information for the [schema.Schema].
// Name is the declared type keyword. When the schema does not declare one,
// the composition keyword it is built from is used instead, and "unknown" if there's none.
//
// Arrays additionally carry the type of their items:
//
//	TypeInfo{Name: "array", Kind: "array", Items: "string"}
func Get(s *schema.Schema) TypeInfo {
	if s == nil {
		return TypeInfo{}
	}
	result := TypeInfo{
		Name: s.Type,
		Kind: s.Kind.String(),
	}
	if result.Name == "" {
		result.Name = result.Kind
	}
	if s.Items != nil {
		result.Items = s.Items.Type
		if result.Items == "" {
			result.Items = s.Items.Kind.String()
		}
	}
	return result
}

// Label returns the bracketed type name, for instance "[object]".
func (t TypeInfo) Label() string {
	return fmt.Sprintf("[%s]", t.Name)
}

// Article returns the type name preceded by an indefinite article, for instance "an integer".
func Article(name string) string {
	if name == "" {
		return ""
	}
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + name
	default:
		return "a " + name
	}
}
