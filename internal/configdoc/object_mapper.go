package configdoc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/nobl9/govy/pkg/govy"
)

func newObjectMapper() *objectMapper {
	return &objectMapper{}
}

// objectMapper flattens a Go type into the list of its yaml property paths.
type objectMapper struct {
	Properties []PropertyDoc
}

func (o *objectMapper) Map(typ reflect.Type, path string) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	doc := PropertyDoc{}
	doc.Path = path
	doc.TypeInfo = getTypeInfo(typ)
	o.Properties = append(o.Properties, doc)

	switch typ.Kind() {
	case reflect.Struct:
		for _, field := range reflect.VisibleFields(typ) {
			name := strings.Split(field.Tag.Get("yaml"), ",")[0]
			if name == "" || name == "-" {
				continue
			}
			o.Map(field.Type, path+"."+name)
		}
	case reflect.Slice:
		o.Map(typ.Elem(), path+"[*]")
	case reflect.Map:
		o.Map(typ.Key(), path+".~")
		o.Map(typ.Elem(), path+".*")
	default:
	}
}

// getTypeInfo strips pointers and keeps the package of named slice elements:
//
//	govy.TypeInfo{Name: "[]API", Kind: "[]struct", Package: ".../config"}
func getTypeInfo(typ reflect.Type) govy.TypeInfo {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	result := govy.TypeInfo{Kind: getKindString(typ)}
	if typ.PkgPath() == "" && typ.Kind() == reflect.Slice {
		result.Name = "[]"
		typ = typ.Elem()
	}
	switch {
	case typ.PkgPath() == "":
		result.Name += typ.String()
	default:
		result.Name += typ.Name()
		result.Package = typ.PkgPath()
	}
	return result
}

func getKindString(typ reflect.Type) string {
	switch typ.Kind() {
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", getKindString(typ.Key()), getKindString(typ.Elem()))
	case reflect.Slice:
		return fmt.Sprintf("[]%s", getKindString(typ.Elem()))
	default:
		return typ.Kind().String()
	}
}
