package validation

import (
	"fmt"
	"strings"
)

// Error type codes for machine-readable error identification.
const (
	ErrTypeMissing         = "missing"
	ErrTypeIntParsing      = "int_parsing"
	ErrTypeFloatParsing    = "float_parsing"
	ErrTypeBoolParsing     = "bool_parsing"
	ErrTypeUUIDParsing     = "uuid_parsing"
	ErrTypeDateParsing     = "date_parsing"
	ErrTypeDateTimeParsing = "datetime_parsing"
	ErrTypeTimeParsing     = "time_parsing"
	ErrTypeDurationParsing = "duration_parsing"
	ErrTypeType            = "type_error"
	ErrTypeSchema          = "schema_error"
	ErrTypeValue           = "value_error"
)

// Error location root tokens.
const (
	LocationBody        = "body"
	LocationQuery       = "query"
	LocationPath        = "path"
	LocationHeaders     = "headers"
	LocationCookie      = "cookie"
	LocationSchemaError = "schema_error"
)

// MsgFieldRequired is reported for absent required parameters.
const MsgFieldRequired = "Field required"

// ValidationErrorDetail describes one failing parameter or structural constraint.
type ValidationErrorDetail struct {
	// Type is a machine-readable error code
	Type string `json:"type"`

	// Loc is the error location, rooted at the parameter source: [source, name, ...]
	Loc []string `json:"loc"`

	// Msg is a human-readable error description
	Msg string `json:"msg"`

	// Input is the value the client sent (the raw string where one exists)
	Input any `json:"input"`

	// Ctx carries error-specific context, or nil
	Ctx map[string]any `json:"ctx"`
}

// Error implements the error interface
func (d ValidationErrorDetail) Error() string {
	if len(d.Loc) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(d.Loc, "."), d.Msg)
	}
	return d.Msg
}

// ValidationError is the request-level failure outcome: an ordered list of details.
type ValidationError struct {
	Errors []ValidationErrorDetail `json:"errors"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Errors[0].Error()
	default:
		return fmt.Sprintf("validation failed with %d errors: %s", len(e.Errors), e.Errors[0].Error())
	}
}

// Add appends a detail to the error list
func (e *ValidationError) Add(detail ValidationErrorDetail) {
	e.Errors = append(e.Errors, detail)
}

// HasErrors returns true if there are any details
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// ConfigError reports a malformed parameter schema. It is a route-registration
// failure, never a per-request condition.
type ConfigError struct {
	// Property is the offending property name, empty for schema-level problems
	Property string

	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("invalid parameter schema: property '%s': %s", e.Property, e.Message)
	}
	return "invalid parameter schema: " + e.Message
}

// CoercionError is a validator-agnostic coercion failure for a single raw value.
type CoercionError struct {
	// Type is one of the *_parsing codes or type_error
	Type string

	Message string

	// Cause is the underlying parser explanation, empty when there is none
	Cause string
}

// Error implements the error interface
func (e *CoercionError) Error() string {
	return e.Message
}

// Detail converts the coercion error into a located ValidationErrorDetail.
func (e *CoercionError) Detail(loc []string, input any) ValidationErrorDetail {
	var ctx map[string]any
	if e.Cause != "" {
		ctx = map[string]any{"error": e.Cause}
	}
	return ValidationErrorDetail{
		Type:  e.Type,
		Loc:   loc,
		Msg:   e.Message,
		Input: input,
		Ctx:   ctx,
	}
}

// NewMissingError creates the detail for an absent required parameter.
func NewMissingError(source ParameterSource, name string) ValidationErrorDetail {
	return ValidationErrorDetail{
		Type:  ErrTypeMissing,
		Loc:   []string{source.Location(), name},
		Msg:   MsgFieldRequired,
		Input: nil,
	}
}

// NewSchemaError creates the detail reported when the structural schema cannot be compiled.
func NewSchemaError(err error) ValidationErrorDetail {
	return ValidationErrorDetail{
		Type:  ErrTypeSchema,
		Loc:   []string{LocationSchemaError},
		Msg:   fmt.Sprintf("failed to compile parameter schema: %v", err),
		Input: nil,
	}
}
