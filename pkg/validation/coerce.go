package validation

import (
	"math"
	"strconv"
	"strings"
)

// Coerce converts a raw string into a typed JSON value. A recognized format
// wins over the declared type because it fully determines both the parser and
// the string result. Without a format, integer, number and boolean are parsed;
// every other type passes the string through unchanged.
func Coerce(raw, expectedType, format string) (any, *CoercionError) {
	if format != "" {
		if parse, ok := LookupFormat(format); ok {
			return parse(raw)
		}
	}

	switch expectedType {
	case "integer":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &CoercionError{
				Type:    ErrTypeIntParsing,
				Message: "Input should be a valid integer, unable to parse string as an integer",
			}
		}
		return n, nil

	case "number":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || isHexFloat(raw) {
			return nil, &CoercionError{
				Type:    ErrTypeFloatParsing,
				Message: "Input should be a valid number, unable to parse string as a number",
			}
		}
		return f, nil

	case "boolean":
		b, ok := parseBool(raw)
		if !ok {
			return nil, &CoercionError{
				Type:    ErrTypeBoolParsing,
				Message: "Input should be a valid boolean, unable to interpret input",
			}
		}
		return b, nil

	default:
		return raw, nil
	}
}

// parseBool is case-insensitive. The empty string maps to false so that an
// empty checkbox-style query flag (?debug=) reads as unset.
func parseBool(raw string) (bool, bool) {
	switch {
	case raw == "", raw == "0", strings.EqualFold(raw, "false"):
		return false, true
	case raw == "1", strings.EqualFold(raw, "true"):
		return true, true
	default:
		return false, false
	}
}

// coerceItems coerces the string items of an array parameter using the item
// type and format. Non-string items were typed upstream and pass through.
// Errors are located at [source, name, index].
func coerceItems(def *ParameterDefinition, items []any, verr *ValidationError) []any {
	if def.ItemType == "" && def.ItemFormat == "" {
		return items
	}

	out := make([]any, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			out[i] = item
			continue
		}
		v, cerr := Coerce(s, def.ItemType, def.ItemFormat)
		if cerr != nil {
			loc := []string{def.Source.Location(), def.LookupName(), strconv.Itoa(i)}
			verr.Add(cerr.Detail(loc, s))
			continue
		}
		out[i] = v
	}
	return out
}

// isHexFloat reports a 0x-prefixed literal, which ParseFloat accepts but a
// decimal number parse must not.
func isHexFloat(raw string) bool {
	unsigned := strings.TrimLeft(raw, "+-")
	return len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X')
}
