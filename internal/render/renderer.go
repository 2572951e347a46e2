// Package render turns schemas and endpoints into documentation fragments.
//
// Every function returns a new [markup.Fragment] and never modifies its input,
// calling a function twice with the same arguments yields equal fragments.
// Schema shapes which cannot be described do not fail the rendering,
// they are replaced with a "RENDER ERROR" fragment embedding the offending schema
// and a warning is logged.
package render

import (
	"log/slog"
	"slices"
)

// defaultHiddenProperties lists the properties which are never rendered in property tables.
// "example" holds example data, not a constraint.
var defaultHiddenProperties = []string{
	"example",
}

type rendererOptions struct {
	logger           *slog.Logger
	hiddenProperties []string
}

type Option func(options rendererOptions) rendererOptions

// WithLogger sets the logger used to report render errors.
func WithLogger(logger *slog.Logger) Option {
	return func(options rendererOptions) rendererOptions {
		options.logger = logger
		return options
	}
}

// WithHiddenProperties specifies additional property names which are skipped by [Renderer.PropertyTable].
func WithHiddenProperties(names ...string) Option {
	return func(options rendererOptions) rendererOptions {
		options.hiddenProperties = append(options.hiddenProperties, names...)
		return options
	}
}

type Renderer struct {
	logger           *slog.Logger
	hiddenProperties []string
}

func New(opts ...Option) *Renderer {
	options := rendererOptions{
		hiddenProperties: slices.Clone(defaultHiddenProperties),
	}
	for _, opt := range opts {
		options = opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return &Renderer{
		logger:           options.logger,
		hiddenProperties: options.hiddenProperties,
	}
}
