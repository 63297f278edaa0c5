package validation

// RawParameterInputs holds the per-request input maps produced by the upstream
// request parser. The engine only reads them.
type RawParameterInputs struct {
	// QueryJSON is the pre-parsed query object. Repeated keys (q=a&q=b) must
	// already be merged into arrays; only array-typed parameters read it.
	QueryJSON map[string]any

	// Query maps query keys to their raw string value
	Query map[string]string

	// Path maps path template variables to their raw segment
	Path map[string]string

	// Headers maps lower-cased header names to their raw value
	Headers map[string]string

	// Cookies maps cookie names to their raw value
	Cookies map[string]string
}

// ExtractedKind tags an ExtractedValue.
type ExtractedKind int

// Extraction results.
const (
	Absent ExtractedKind = iota
	Raw
	JSON
)

// ExtractedValue is what the extractor found for one definition: nothing, a
// raw string, or a pre-parsed JSON value (array-typed query parameters).
type ExtractedValue struct {
	Kind ExtractedKind
	Raw  string
	JSON any
}

// Extract fetches the value for a definition from its source map.
func Extract(def *ParameterDefinition, inputs *RawParameterInputs) ExtractedValue {
	if inputs == nil {
		return ExtractedValue{Kind: Absent}
	}

	if def.Source == SourceQuery && def.IsArray() {
		v, ok := inputs.QueryJSON[def.Name]
		if !ok {
			return ExtractedValue{Kind: Absent}
		}
		return ExtractedValue{Kind: JSON, JSON: wrapArray(v)}
	}

	var values map[string]string
	switch def.Source {
	case SourceQuery:
		values = inputs.Query
	case SourcePath:
		values = inputs.Path
	case SourceHeader:
		values = inputs.Headers
	case SourceCookie:
		values = inputs.Cookies
	}

	raw, ok := values[def.LookupName()]
	if !ok {
		return ExtractedValue{Kind: Absent}
	}
	return ExtractedValue{Kind: Raw, Raw: raw}
}

// wrapArray turns a single scalar into a one-element array. Objects are left
// alone so the caller can report them.
func wrapArray(v any) any {
	switch vv := v.(type) {
	case []any, map[string]any:
		return v
	case []string:
		items := make([]any, len(vv))
		for i, s := range vv {
			items[i] = s
		}
		return items
	default:
		return []any{v}
	}
}
