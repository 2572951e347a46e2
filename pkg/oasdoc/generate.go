package oasdoc

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/oasdoc/internal/assemble"
	"github.com/nieomylnieja/oasdoc/internal/openapi"
	"github.com/nieomylnieja/oasdoc/internal/render"
)

// Source names an OpenAPI document and points to its location on disk.
type Source struct {
	Name string
	Path string
}

// DefaultSources returns the documents loaded when [WithSources] is not used,
// relative to the working directory.
func DefaultSources() []Source {
	return []Source{
		{Name: "issuer", Path: "issuer.yml"},
		{Name: "verifier", Path: "verifier.yml"},
		{Name: "holder", Path: "holder.yml"},
		{Name: "exchanges", Path: "exchanges.yml"},
	}
}

// generateOptions contains options for configuring the behavior of the [Generate] function.
type generateOptions struct {
	sources          []Source
	logger           *slog.Logger
	selectors        assemble.Selectors
	hiddenProperties []string
	strict           bool
}

type GenerateOption func(options generateOptions) generateOptions

// WithSources sets the documents to load, in precedence order.
func WithSources(sources ...Source) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.sources = sources
		return options
	}
}

// WithLogger sets the logger, [slog.Default] is used otherwise.
func WithLogger(logger *slog.Logger) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.logger = logger
		return options
	}
}

// WithSelectors changes the class names marking the regions to fill.
// Empty names keep their defaults.
func WithSelectors(summaryTable, callerTable, detailSection string) GenerateOption {
	return func(options generateOptions) generateOptions {
		if summaryTable != "" {
			options.selectors.SummaryTable = summaryTable
		}
		if callerTable != "" {
			options.selectors.CallerTable = callerTable
		}
		if detailSection != "" {
			options.selectors.DetailSection = detailSection
		}
		return options
	}
}

// WithHiddenProperties specifies schema properties which are skipped in property tables.
func WithHiddenProperties(names ...string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.hiddenProperties = append(options.hiddenProperties, names...)
		return options
	}
}

// WithStrictValidation decides whether OpenAPI validation problems fail the generation.
// It is enabled by default.
func WithStrictValidation(strict bool) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.strict = strict
		return options
	}
}

// Generate loads the OpenAPI documents, fills the marked regions of the HTML document
// read from input and writes the result to output.
func Generate(ctx context.Context, input io.Reader, output io.Writer, opts ...GenerateOption) error {
	options := generateOptions{
		sources:   DefaultSources(),
		selectors: assemble.DefaultSelectors(),
		strict:    true,
	}
	for _, opt := range opts {
		options = opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if len(options.sources) == 0 {
		return errors.New("at least one OpenAPI document source is required")
	}

	loader := openapi.NewLoader(
		openapi.WithLogger(options.logger),
		openapi.WithStrictValidation(options.strict),
	)
	sources := make([]openapi.Source, 0, len(options.sources))
	for _, source := range options.sources {
		sources = append(sources, openapi.Source{Name: source.Name, Path: source.Path})
	}
	apis, err := loader.LoadAll(ctx, sources)
	if err != nil {
		return err
	}

	renderer := render.New(
		render.WithLogger(options.logger),
		render.WithHiddenProperties(options.hiddenProperties...),
	)
	return assemble.New(renderer, options.selectors, options.logger).Render(input, output, apis)
}
