// Package oasdoc renders API documentation from OpenAPI documents into an HTML document.
//
// The HTML document is written by hand, authors mark the regions which should be
// filled with generated content using class names and data attributes:
//
//	<table class="api-summary-table" data-api-path="/credentials/issue /credentials/status"></table>
//	<div class="api-detail" data-api-endpoint="post /credentials/issue"></div>
//	<table class="api-component-table" data-api-path="/credentials/status"></table>
//
// Summary tables list every operation defined for the given paths with their summaries.
// Detail sections describe a single operation: its summary, request body schema and responses.
// Caller tables list the expected callers of each operation, taken from the
// "x-expectedCaller" extension.
//
// # Basic Usage
//
//	err := oasdoc.Generate(ctx, input, output,
//	    oasdoc.WithSources(
//	        oasdoc.Source{Name: "issuer", Path: "issuer.yml"},
//	        oasdoc.Source{Name: "exchanges", Path: "exchanges.yml"},
//	    ),
//	)
//
// Sources are listed in precedence order.
// When several documents define the same path, the last one wins.
// Paths which none of the documents define are rendered as an error placeholder
// instead of failing the generation.
//
// # Configuration Options
//
//   - WithSources replaces the default issuer, verifier, holder and exchanges documents.
//   - WithSelectors changes the class names marking each kind of region.
//   - WithHiddenProperties names schema properties which are never listed, "example" is always hidden.
//   - WithStrictValidation(false) logs OpenAPI validation problems instead of failing.
//   - WithLogger sets the [slog.Logger] used for load and rendering diagnostics.
//
// # Failure Modes
//
// If any document fails to load, [Generate] returns the error before reading the input,
// nothing is written to the output.
// Schemas which cannot be described are rendered as "RENDER ERROR" followed by the
// schema itself, and a warning is logged.
package oasdoc
