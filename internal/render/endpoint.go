package render

import (
	"log/slog"
	"strings"

	"github.com/nieomylnieja/oasdoc/internal/markup"
	"github.com/nieomylnieja/oasdoc/internal/openapi"
	"github.com/nieomylnieja/oasdoc/internal/schema"
)

const expectedCallerUndefined = "Expected Caller Undefined"

// SummaryTable lists every operation of the paths with its summary.
func (r *Renderer) SummaryTable(apis []*openapi.Document, paths []string) markup.Table {
	return endpointTable(apis, paths, "Description", func(op *openapi.Operation) string {
		return op.Summary
	})
}

// CallerTable lists every operation of the paths with the callers expected to invoke it.
func (r *Renderer) CallerTable(apis []*openapi.Document, paths []string) markup.Table {
	return endpointTable(apis, paths, "Expected Caller", func(op *openapi.Operation) string {
		if op.ExpectedCallers == nil {
			return expectedCallerUndefined
		}
		return strings.Join(op.ExpectedCallers, ", ")
	})
}

func endpointTable(
	apis []*openapi.Document,
	paths []string,
	title string,
	describe func(op *openapi.Operation) string,
) markup.Table {
	table := markup.Table{Header: []string{"Endpoint", title}}
	for _, path := range paths {
		endpoint := openapi.ResolveEndpoint(apis, path)
		for _, op := range endpoint.Operations {
			table.Rows = append(table.Rows, markup.Row{Cells: []markup.Cell{
				{Content: markup.Plain(strings.ToUpper(op.Verb) + " " + path)},
				{Content: markup.Plain(describe(op))},
			}})
		}
	}
	return table
}

// ResponsesTable lists the responses of the operation, in declared order.
func (r *Renderer) ResponsesTable(op *openapi.Operation) markup.Table {
	table := markup.Table{
		Class:  tableClass,
		Header: []string{"Response", "Body"},
	}
	for _, resp := range op.Responses {
		body := markup.Concat(
			markup.Fragment{markup.Span(resp.Description), markup.Break{}},
			r.ResponseBody(resp.Content),
		)
		table.Rows = append(table.Rows, markup.Row{Cells: []markup.Cell{
			{Content: markup.Plain(resp.Status)},
			{Content: body},
		}})
	}
	return table
}

// EndpointDetail describes a single operation: its summary, request body schema and responses.
func (r *Renderer) EndpointDetail(apis []*openapi.Document, verb, path string) markup.Fragment {
	upperVerb := strings.ToUpper(verb)
	op, ok := openapi.ResolveEndpoint(apis, path).Operation(verb)
	if !ok {
		r.logger.Warn("operation not defined", slog.String("verb", verb), slog.String("path", path))
		return markup.Fragment{paragraph(upperVerb + " " + path + " - " +
			openapi.NotDefinedSummary + strings.ToLower(verb) + " " + path)}
	}

	detail := markup.Fragment{paragraph(upperVerb + " " + path + " - " + op.Summary)}
	if op.RequestBody != nil {
		detail = markup.Concat(detail, r.requestBody(op.RequestBody.Schema(), upperVerb, path))
	}
	return detail.Append(
		paragraph("The "+path+" endpoint can result in any of these responses when receiving a "+upperVerb+":"),
		r.ResponsesTable(op),
	)
}

func (r *Renderer) requestBody(s *schema.Schema, upperVerb, path string) markup.Fragment {
	if s == nil {
		return markup.Fragment{paragraph("RENDERING ERROR")}
	}
	if s.Properties != nil || s.Kind != schema.KindAnyOf {
		return markup.Fragment{
			paragraph("The " + path + " endpoint uses the following schema when receiving a " + upperVerb + ":"),
			r.PropertyTable(s),
		}
	}
	body := markup.Fragment{
		paragraph("The " + path + " endpoint uses any of the following schemas when receiving a " + upperVerb + ":"),
	}
	for i, alt := range s.AnyOf {
		body = body.Append(r.PropertyTable(alt))
		if i+1 < len(s.AnyOf) {
			body = body.Append(paragraph("Alternatively, the " + path + " endpoint can also use the following schema:"))
		}
	}
	return body
}

func paragraph(text string) markup.Paragraph {
	return markup.Paragraph{Content: markup.Plain(text)}
}
