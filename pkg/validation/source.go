package validation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParameterSource identifies the part of a request a parameter is read from.
type ParameterSource int

// Parameter sources.
const (
	SourceQuery ParameterSource = iota
	SourcePath
	SourceHeader
	SourceCookie
)

// ParseSource maps a schema "source" tag to a ParameterSource.
func ParseSource(tag string) (ParameterSource, error) {
	switch tag {
	case "query":
		return SourceQuery, nil
	case "path":
		return SourcePath, nil
	case "header":
		return SourceHeader, nil
	case "cookie":
		return SourceCookie, nil
	default:
		return 0, fmt.Errorf("unknown source %q (expected query, path, header or cookie)", tag)
	}
}

// String returns the schema tag for the source.
func (s ParameterSource) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourcePath:
		return "path"
	case SourceHeader:
		return "header"
	case SourceCookie:
		return "cookie"
	default:
		return fmt.Sprintf("ParameterSource(%d)", int(s))
	}
}

// Location returns the token used as the first segment of an error location.
func (s ParameterSource) Location() string {
	switch s {
	case SourceQuery:
		return LocationQuery
	case SourcePath:
		return LocationPath
	case SourceHeader:
		return LocationHeaders
	case SourceCookie:
		return LocationCookie
	default:
		return LocationBody
	}
}

// LookupName returns the key a parameter is fetched under. Header names follow
// RFC 7230 case-insensitivity: underscores become hyphens and the result is
// lower-cased. Other sources use the name verbatim.
func (s ParameterSource) LookupName(name string) string {
	if s != SourceHeader {
		return name
	}
	return NormalizeHeaderName(name)
}

// NormalizeHeaderName converts a parameter name into its header lookup form.
func NormalizeHeaderName(name string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Lower(language.Und).String(strings.ReplaceAll(name, "_", "-"))
}
