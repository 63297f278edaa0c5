package validation

import (
	"fmt"
	"sort"
)

// ParameterSchema is a JSON-Schema shaped object whose properties carry a
// "source" extension tag. It is owned by the route and never mutated.
type ParameterSchema = map[string]any

// ParameterDefinition is the compiled, immutable view of one schema property.
type ParameterDefinition struct {
	// Name is the property name; the key in the coerced output
	Name string `json:"name"`

	Source ParameterSource `json:"-"`

	// ExpectedType is the declared JSON type, empty when absent
	ExpectedType string `json:"type,omitempty"`

	// Format is the declared format (date, time, date-time, duration, uuid), empty when absent
	Format string `json:"format,omitempty"`

	// Required is always true for path parameters
	Required bool `json:"required"`

	// ItemType and ItemFormat describe array items, used to coerce string items
	ItemType   string `json:"itemType,omitempty"`
	ItemFormat string `json:"itemFormat,omitempty"`

	// Default is applied when an optional parameter is absent and HasDefault is set
	Default    any  `json:"default,omitempty"`
	HasDefault bool `json:"-"`
}

// LookupName returns the key the parameter is fetched under in its source map.
func (d *ParameterDefinition) LookupName() string {
	return d.Source.LookupName(d.Name)
}

// IsArray reports whether the parameter is declared as a JSON array.
func (d *ParameterDefinition) IsArray() bool {
	return d.ExpectedType == "array"
}

// Analyze compiles a parameter schema into its definition list. Definitions
// are ordered by property name so error ordering is deterministic.
func Analyze(schema ParameterSchema) ([]ParameterDefinition, error) {
	return AnalyzeOrdered(schema, nil)
}

// AnalyzeOrdered is Analyze with an explicit property order, usually the
// order the route file declared. Listed names that are not properties are
// ignored; properties missing from order follow, sorted by name.
func AnalyzeOrdered(schema ParameterSchema, order []string) ([]ParameterDefinition, error) {
	rawProps, ok := schema["properties"]
	if !ok {
		return nil, &ConfigError{Message: "schema has no 'properties'"}
	}
	props, ok := rawProps.(map[string]any)
	if !ok {
		return nil, &ConfigError{Message: "'properties' must be an object"}
	}

	required, err := requiredSet(schema["required"])
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(props))
	listed := make(map[string]bool, len(order))
	for _, name := range order {
		if _, ok := props[name]; ok && !listed[name] {
			listed[name] = true
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(props)-len(names))
	for name := range props {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	defs := make([]ParameterDefinition, 0, len(names))
	for _, name := range names {
		def, err := analyzeProperty(name, props[name], required[name])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func analyzeProperty(name string, raw any, listedRequired bool) (ParameterDefinition, error) {
	prop, ok := raw.(map[string]any)
	if !ok {
		return ParameterDefinition{}, &ConfigError{Property: name, Message: "property schema must be an object"}
	}

	tag, ok := prop["source"].(string)
	if !ok {
		return ParameterDefinition{}, &ConfigError{Property: name, Message: "missing 'source' (query, path, header or cookie)"}
	}
	source, err := ParseSource(tag)
	if err != nil {
		return ParameterDefinition{}, &ConfigError{Property: name, Message: err.Error()}
	}

	def := ParameterDefinition{
		Name:         name,
		Source:       source,
		ExpectedType: stringField(prop, "type"),
		Format:       stringField(prop, "format"),
	}

	// A path template cannot omit a segment.
	if source == SourcePath {
		def.Required = true
	} else {
		optional, _ := prop["optional"].(bool)
		def.Required = listedRequired && !optional
	}

	if items, ok := prop["items"].(map[string]any); ok {
		def.ItemType = stringField(items, "type")
		def.ItemFormat = stringField(items, "format")
	}

	if dflt, ok := prop["default"]; ok {
		def.Default = dflt
		def.HasDefault = true
	}

	return def, nil
}

// requiredSet reads the schema's "required" array. YAML and JSON decoders
// produce []any; Go callers may pass []string.
func requiredSet(raw any) (map[string]bool, error) {
	set := make(map[string]bool)
	switch list := raw.(type) {
	case nil:
	case []string:
		for _, name := range list {
			set[name] = true
		}
	case []any:
		for i, item := range list {
			name, ok := item.(string)
			if !ok {
				return nil, &ConfigError{Message: fmt.Sprintf("'required' entry %d is not a string", i)}
			}
			set[name] = true
		}
	default:
		return nil, &ConfigError{Message: "'required' must be an array of property names"}
	}
	return set, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
