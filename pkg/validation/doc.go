// Package validation validates and coerces HTTP request parameters for a
// route against a declarative parameter schema.
//
// The schema is a JSON-Schema object whose properties carry a "source" tag
// naming where each parameter is read from:
//   - query
//   - path
//   - header
//   - cookie
//
// # Basic Usage
//
// Build a validator once per route:
//
//	validator, err := validation.NewParameterValidator(map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	        "id":      map[string]any{"type": "integer", "source": "path"},
//	        "x_token": map[string]any{"type": "string", "source": "header"},
//	    },
//	    "required": []any{"x_token"},
//	})
//	if err != nil {
//	    log.Fatal(err) // *ConfigError: fix the route definition
//	}
//
// Validate a request:
//
//	params, err := validator.ValidateAndExtract(&validation.RawParameterInputs{
//	    Path:    map[string]string{"id": "42"},
//	    Headers: map[string]string{"x-token": "abc"},
//	})
//	var verr *validation.ValidationError
//	if errors.As(err, &verr) {
//	    for _, e := range verr.Errors {
//	        log.Printf("%v %s: %s", e.Loc, e.Type, e.Msg)
//	    }
//	}
//
// # Phases
//
// Every parameter is extracted and coerced first, and all failures are
// collected. Only when every parameter coerces is the assembled object checked
// against the schema's structural constraints (enum, minimum, pattern, ...).
// Structural errors are reported at the parameter's source and carry the raw
// string the client sent as their input.
//
// # Formats
//
// The date, time, date-time, duration and uuid formats select a parser that
// takes precedence over the declared type; successful results are strings.
package validation
