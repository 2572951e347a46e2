package openapi

// NotDefinedSummary prefixes the summary of the placeholder returned for unknown paths.
const NotDefinedSummary = "Error: API Endpoint not defined - "

// ResolveEndpoint returns the [PathItem] of the last document in apis which defines path.
// Documents later in the list take precedence over earlier ones.
// If no document defines the path a placeholder with a single "post" operation,
// whose summary reports the missing endpoint, is returned.
func ResolveEndpoint(apis []*Document, path string) *PathItem {
	var endpoint *PathItem
	for _, api := range apis {
		if api == nil {
			continue
		}
		if item, ok := api.Paths[path]; ok {
			endpoint = item
		}
	}
	if endpoint == nil {
		return NotDefined(path)
	}
	return endpoint
}

// NotDefined returns the placeholder [PathItem] for a path no document defines.
func NotDefined(path string) *PathItem {
	return &PathItem{
		Operations: []*Operation{{
			Verb:    "post",
			Summary: NotDefinedSummary + path,
		}},
	}
}
