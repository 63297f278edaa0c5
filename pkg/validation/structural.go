package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/alt"
	"github.com/ohler55/ojg/jp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// StructuralValidator checks a fully typed value against schema constraints
// that coercion cannot express. Error locations are rooted at "body".
type StructuralValidator interface {
	Validate(value any) *ValidationError
}

// SchemaCompiler builds a StructuralValidator from a schema that no longer
// carries the "source" keyword.
type SchemaCompiler func(schema map[string]any) (StructuralValidator, error)

// sourceKeywords selects the extension keyword on every property.
var sourceKeywords = jp.MustParseString("$.properties.*.source")

// propertySchemas and itemSchemas select the schemas whose format coercion
// has already checked.
var (
	propertySchemas = jp.MustParseString("$.properties.*")
	itemSchemas     = jp.MustParseString("$.properties.*.items")
)

// keywordTypes maps a failing JSON Schema keyword to its error type code.
var keywordTypes = map[string]string{
	"enum":             "enum",
	"const":            "const",
	"type":             ErrTypeType,
	"minimum":          "greater_than_equal",
	"maximum":          "less_than_equal",
	"exclusiveMinimum": "greater_than",
	"exclusiveMaximum": "less_than",
	"multipleOf":       "multiple_of",
	"minLength":        "string_too_short",
	"maxLength":        "string_too_long",
	"pattern":          "string_pattern_mismatch",
	"minItems":         "too_short",
	"maxItems":         "too_long",
	"uniqueItems":      "unique_items",
	"required":         ErrTypeMissing,
}

// StructuralSchema returns a deep copy of schema suitable for a generic
// validator. The "source" keyword is removed from every property. Formats in
// the coercion table are removed from properties and their items, since the
// coerced strings follow this package's grammar rather than RFC 3339. The
// "required" list is dropped because presence is enforced during extraction
// where path and optional overrides apply.
func StructuralSchema(schema ParameterSchema) (map[string]any, error) {
	dup, ok := alt.Dup(schema).(map[string]any)
	if !ok {
		return nil, errors.New("parameter schema is not an object")
	}
	if err := sourceKeywords.Del(dup); err != nil {
		return nil, fmt.Errorf("failed to strip source keywords: %w", err)
	}
	for _, node := range append(propertySchemas.Get(dup), itemSchemas.Get(dup)...) {
		if prop, ok := node.(map[string]any); ok {
			if format, _ := prop["format"].(string); IsKnownFormat(format) {
				delete(prop, "format")
			}
		}
	}
	delete(dup, "required")
	return dup, nil
}

// JSONSchemaValidator is the default StructuralValidator, backed by a compiled
// Draft 2020-12 schema.
type JSONSchemaValidator struct {
	schema *jsonschema.Schema
}

// NewJSONSchemaValidator compiles schema. It satisfies SchemaCompiler.
func NewJSONSchemaValidator(schema map[string]any) (StructuralValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	// Convert to JSON so YAML-decoded numbers and Go slices load consistently
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := compiler.AddResource("parameters.json", bytes.NewReader(schemaBytes)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile("parameters.json")
	if err != nil {
		return nil, err
	}
	return &JSONSchemaValidator{schema: compiled}, nil
}

// Validate checks value and flattens the validator's cause tree into details.
func (v *JSONSchemaValidator) Validate(value any) *ValidationError {
	doc, err := normalizeInstance(value)
	if err != nil {
		return &ValidationError{Errors: []ValidationErrorDetail{{
			Type:  ErrTypeValue,
			Loc:   []string{LocationBody},
			Msg:   err.Error(),
			Input: nil,
		}}}
	}

	err = v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) {
		collectLeaves(schemaErr, value, verr)
	}
	if !verr.HasErrors() {
		verr.Add(ValidationErrorDetail{
			Type:  ErrTypeValue,
			Loc:   []string{LocationBody},
			Msg:   err.Error(),
			Input: value,
		})
	}
	return verr
}

// normalizeInstance round-trips value through JSON with json.Number so the
// validator sees the same numeric representation it would for decoded input.
func normalizeInstance(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// collectLeaves appends one detail per leaf cause.
func collectLeaves(err *jsonschema.ValidationError, root any, verr *ValidationError) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			collectLeaves(cause, root, verr)
		}
		return
	}

	tokens := pointerTokens(err.InstanceLocation)
	keyword := lastToken(err.KeywordLocation)
	errType, ok := keywordTypes[keyword]
	if !ok {
		errType = ErrTypeValue
	}

	verr.Add(ValidationErrorDetail{
		Type:  errType,
		Loc:   append([]string{LocationBody}, tokens...),
		Msg:   err.Message,
		Input: resolvePointer(root, tokens),
		Ctx: map[string]any{
			"keyword":     keyword,
			"schema_path": err.KeywordLocation,
		},
	})
}

// pointerTokens splits a JSON pointer into unescaped reference tokens.
func pointerTokens(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return nil
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

func lastToken(ptr string) string {
	tokens := pointerTokens(ptr)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// resolvePointer walks tokens through value, returning nil when the path does
// not exist.
func resolvePointer(value any, tokens []string) any {
	cur := value
	for _, tok := range tokens {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[tok]
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			cur = node[idx]
		default:
			return nil
		}
	}
	return cur
}
