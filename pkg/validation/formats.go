package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sosodev/duration"
)

// FormatParser validates a raw string against a format and returns its JSON
// representation, which is always a string.
type FormatParser func(raw string) (string, *CoercionError)

// formatParsers maps the closed set of supported format names to their parsers.
var formatParsers = map[string]FormatParser{
	"uuid":      parseUUID,
	"date":      parseDate,
	"time":      parseTime,
	"date-time": parseDateTime,
	"duration":  parseDuration,
}

// Layouts tried for each temporal format, most specific first.
var (
	dateLayout      = "2006-01-02"
	timeLayouts     = []string{"15:04:05", "15:04"}
	dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}
)

const urnPrefix = "urn:uuid:"

// LookupFormat returns the parser for a format name.
func LookupFormat(format string) (FormatParser, bool) {
	p, ok := formatParsers[format]
	return p, ok
}

// IsKnownFormat returns true if the format is recognized
func IsKnownFormat(format string) bool {
	_, ok := formatParsers[format]
	return ok
}

// parseUUID accepts RFC 4122 text, tolerating a urn:uuid: prefix, and returns
// the canonical lower-case hyphenated form.
func parseUUID(raw string) (string, *CoercionError) {
	u, err := uuid.Parse(raw)
	if err == nil {
		return u.String(), nil
	}
	cause := uuidExplanation(raw, err)
	return "", &CoercionError{
		Type:    ErrTypeUUIDParsing,
		Message: "Input should be a valid UUID, " + cause,
		Cause:   cause,
	}
}

// uuidExplanation names the first character that cannot appear in a UUID and
// its byte offset, falling back to the parser's own message for length and
// grouping problems.
func uuidExplanation(raw string, parseErr error) string {
	body, offset := raw, 0
	if len(body) >= len(urnPrefix) && strings.EqualFold(body[:len(urnPrefix)], urnPrefix) {
		body, offset = body[len(urnPrefix):], len(urnPrefix)
	} else if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") && len(body) >= 2 {
		body, offset = body[1:len(body)-1], 1
	}

	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if !isUUIDChar(r) {
			return fmt.Sprintf("invalid character: expected an optional prefix of `urn:uuid:` followed by [0-9a-fA-F-], found `%c` at %d", r, offset+i)
		}
		i += size
	}
	return parseErr.Error()
}

func isUUIDChar(r rune) bool {
	return r == '-' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}

// parseDate is strict YYYY-MM-DD; calendar-invalid dates such as 2023-02-30 fail.
func parseDate(raw string) (string, *CoercionError) {
	if _, err := time.Parse(dateLayout, raw); err != nil {
		cause := timeExplanation(err)
		return "", &CoercionError{
			Type:    ErrTypeDateParsing,
			Message: "Input should be a valid date in the format YYYY-MM-DD, " + cause,
			Cause:   cause,
		}
	}
	return raw, nil
}

// parseTime is strict HH:MM:SS or HH:MM with two-digit fields.
func parseTime(raw string) (string, *CoercionError) {
	err := checkTimeShape(raw)
	if err == nil {
		err = parseAny(timeLayouts, raw)
	}
	if err != nil {
		cause := timeExplanation(err)
		return "", &CoercionError{
			Type:    ErrTypeTimeParsing,
			Message: "Input should be a valid time in the format HH:MM:SS or HH:MM, " + cause,
			Cause:   cause,
		}
	}
	return raw, nil
}

// parseDateTime accepts RFC 3339 timestamps with Z or a numeric offset, and the
// offset-less local form.
func parseDateTime(raw string) (string, *CoercionError) {
	if err := parseAny(dateTimeLayouts, raw); err != nil {
		cause := timeExplanation(err)
		return "", &CoercionError{
			Type:    ErrTypeDateTimeParsing,
			Message: "Input should be a valid datetime, " + cause,
			Cause:   cause,
		}
	}
	return raw, nil
}

// checkTimeShape rejects what time.Parse would tolerate beyond HH:MM[:SS]:
// one-digit fields and fractional seconds.
func checkTimeShape(raw string) error {
	if len(raw) != 5 && len(raw) != 8 {
		return errors.New("expected HH:MM:SS or HH:MM")
	}
	for i := 0; i < len(raw); i++ {
		if i%3 == 2 {
			if raw[i] != ':' {
				return fmt.Errorf("expected ':' at %d", i)
			}
		} else if raw[i] < '0' || raw[i] > '9' {
			return fmt.Errorf("expected a digit at %d", i)
		}
	}
	return nil
}

// parseDuration accepts the ISO 8601 duration grammar, e.g. PT1H30M or P1DT12H.
// At least one component is required, so P and PT alone are rejected.
func parseDuration(raw string) (string, *CoercionError) {
	err := checkDurationComponents(raw)
	if err == nil {
		_, err = duration.Parse(raw)
	}
	if err != nil {
		cause := err.Error()
		return "", &CoercionError{
			Type:    ErrTypeDurationParsing,
			Message: "Input should be a valid duration, " + cause,
			Cause:   cause,
		}
	}
	return raw, nil
}

func checkDurationComponents(raw string) error {
	body, ok := strings.CutPrefix(raw, "P")
	if !ok {
		return nil
	}
	date, clock, hasT := strings.Cut(body, "T")
	if hasT && clock == "" {
		return errors.New("expected at least one component after T")
	}
	if date == "" && clock == "" {
		return errors.New("expected at least one component after P")
	}
	return nil
}

// parseAny tries each layout in order and returns the first layout's error
// when none match, since it describes the fullest form.
func parseAny(layouts []string, raw string) error {
	var first error
	for _, layout := range layouts {
		_, err := time.Parse(layout, raw)
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
	}
	return first
}

// timeExplanation turns a time.ParseError into a short reason without the
// layout noise.
func timeExplanation(err error) string {
	var pe *time.ParseError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	if pe.Message != "" {
		return strings.TrimPrefix(pe.Message, ": ")
	}
	if pe.ValueElem == "" {
		return "input is too short"
	}
	return fmt.Sprintf("unexpected %q at %q", pe.ValueElem, pe.Value)
}
