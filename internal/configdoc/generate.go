// Package configdoc generates a reference of configuration properties from their govy validators.
//
// Property paths and types are discovered through reflection over the yaml struct tags,
// validation rules come from [govy.Plan].
package configdoc

import (
	"reflect"
	"slices"
	"strings"

	"github.com/nobl9/govy/pkg/govy"
	"github.com/pkg/errors"
)

type ObjectDoc struct {
	Name       string        `json:"name"`
	Properties []PropertyDoc `json:"properties"`
}

type PropertyDoc struct {
	govy.PropertyPlan
	ChildrenPaths []string `json:"childrenPaths,omitempty"`
}

type generateOptions struct {
	govyPlanOptions []govy.PlanOption
	filterPaths     []string
}

type GenerateOption func(options generateOptions) generateOptions

// WithPlanOptions passes [govy.PlanOption] to the internally called [govy.Plan].
func WithPlanOptions(govyOptions ...govy.PlanOption) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.govyPlanOptions = append(options.govyPlanOptions, govyOptions...)
		return options
	}
}

// WithFilteredPaths excludes properties from the reference, for instance "$.selectors".
// Children of an excluded property are excluded as well.
func WithFilteredPaths(paths ...string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.filterPaths = append(options.filterPaths, paths...)
		return options
	}
}

func Generate[T any](validator govy.Validator[T], opts ...GenerateOption) (ObjectDoc, error) {
	options := generateOptions{}
	for _, opt := range opts {
		options = opt(options)
	}

	mapper := newObjectMapper()
	mapper.Map(reflect.TypeOf(*new(T)), "$")
	objectDoc := ObjectDoc{Properties: mapper.Properties}
	for i, property := range objectDoc.Properties {
		objectDoc.Properties[i].ChildrenPaths = findPropertyChildrenPaths(property.Path, objectDoc.Properties)
	}

	plan, err := govy.Plan(validator, options.govyPlanOptions...)
	if err != nil {
		var t T
		return ObjectDoc{}, errors.Wrapf(err, "failed to generate validation plan for %T", t)
	}
	objectDoc.extendWithValidationPlan(plan)
	return objectDoc.filter(options.filterPaths), nil
}

// extendWithValidationPlan replaces mapped properties with their [govy.PropertyPlan].
func (o *ObjectDoc) extendWithValidationPlan(plan *govy.ValidatorPlan) {
	o.Name = plan.Name
	for _, propPlan := range plan.Properties {
		for i, propDoc := range o.Properties {
			if propPlan.Path != propDoc.Path {
				continue
			}
			o.Properties[i] = PropertyDoc{
				PropertyPlan:  *propPlan,
				ChildrenPaths: propDoc.ChildrenPaths,
			}
			break
		}
	}
}

func (o ObjectDoc) filter(paths []string) ObjectDoc {
	if len(paths) == 0 {
		return o
	}
	excluded := func(path string) bool {
		return slices.ContainsFunc(paths, func(filtered string) bool {
			return path == filtered ||
				strings.HasPrefix(path, filtered+".") ||
				strings.HasPrefix(path, filtered+"[")
		})
	}
	properties := make([]PropertyDoc, 0, len(o.Properties))
	for _, property := range o.Properties {
		if excluded(property.Path) {
			continue
		}
		property.ChildrenPaths = slices.DeleteFunc(slices.Clone(property.ChildrenPaths), excluded)
		properties = append(properties, property)
	}
	o.Properties = properties
	return o
}

func findPropertyChildrenPaths(parent string, properties []PropertyDoc) []string {
	var childrenPaths []string
	for _, property := range properties {
		childRelativePath, found := strings.CutPrefix(property.Path, parent+".")
		if !found {
			continue
		}
		// Not an immediate child.
		if strings.Contains(childRelativePath, ".") {
			continue
		}
		childrenPaths = append(childrenPaths, property.Path)
	}
	return childrenPaths
}
