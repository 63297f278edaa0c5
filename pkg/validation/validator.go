package validation

import (
	"log/slog"
	"sync"

	"github.com/getmockd/reqparam/pkg/logging"
	"github.com/ohler55/ojg/alt"
)

// ParameterValidator validates and coerces the parameters of one route. It is
// built once at route registration and is safe for concurrent use: nothing
// mutates it after construction except the one-time structural compile, which
// is guarded by sync.Once.
type ParameterValidator struct {
	name        string
	order       []string
	schema      ParameterSchema
	definitions []ParameterDefinition
	compile     SchemaCompiler
	logger      *slog.Logger

	once        sync.Once
	structural  StructuralValidator
	schemaError error
}

// Option configures a ParameterValidator.
type Option func(*ParameterValidator)

// WithLogger sets the logger. Defaults to logging.Nop().
func WithLogger(logger *slog.Logger) Option {
	return func(v *ParameterValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithSchemaCompiler replaces the structural validator backend.
func WithSchemaCompiler(compile SchemaCompiler) Option {
	return func(v *ParameterValidator) {
		if compile != nil {
			v.compile = compile
		}
	}
}

// WithName labels log records with the route name.
func WithName(name string) Option {
	return func(v *ParameterValidator) {
		v.name = name
	}
}

// WithPropertyOrder sets the definition order, and with it the order of
// coercion errors. Without it definitions are sorted by name.
func WithPropertyOrder(names []string) Option {
	return func(v *ParameterValidator) {
		v.order = append([]string(nil), names...)
	}
}

// NewParameterValidator analyzes schema and returns a reusable validator.
// A malformed schema yields a *ConfigError.
func NewParameterValidator(schema ParameterSchema, opts ...Option) (*ParameterValidator, error) {
	owned, _ := alt.Dup(schema).(map[string]any)
	if owned == nil {
		owned = map[string]any{}
	}

	v := &ParameterValidator{
		schema:  owned,
		compile: NewJSONSchemaValidator,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}

	defs, err := AnalyzeOrdered(owned, v.order)
	if err != nil {
		return nil, err
	}
	v.definitions = defs
	return v, nil
}

// Definitions returns a copy of the compiled definition list.
func (v *ParameterValidator) Definitions() []ParameterDefinition {
	out := make([]ParameterDefinition, len(v.definitions))
	copy(out, v.definitions)
	return out
}

// Name returns the route label, empty if none was set.
func (v *ParameterValidator) Name() string {
	return v.name
}

// ValidateAndExtract coerces every declared parameter from inputs and, when
// all of them coerce, runs a single structural validation pass. It returns the
// coerced parameter object, or a *ValidationError listing every problem.
func (v *ParameterValidator) ValidateAndExtract(inputs *RawParameterInputs) (map[string]any, error) {
	params := make(map[string]any, len(v.definitions))
	raw := make(map[string]string, len(v.definitions))
	verr := &ValidationError{}

	for i := range v.definitions {
		def := &v.definitions[i]
		loc := []string{def.Source.Location(), def.LookupName()}

		ext := Extract(def, inputs)
		switch ext.Kind {
		case Absent:
			if def.Required {
				verr.Add(NewMissingError(def.Source, def.LookupName()))
			} else if def.HasDefault {
				params[def.Name] = alt.Dup(def.Default)
			}

		case JSON:
			items, ok := ext.JSON.([]any)
			if !ok {
				verr.Add(ValidationErrorDetail{
					Type:  ErrTypeType,
					Loc:   loc,
					Msg:   "Input should be a valid array",
					Input: ext.JSON,
				})
				continue
			}
			params[def.Name] = coerceItems(def, items, verr)

		case Raw:
			raw[def.Name] = ext.Raw
			value, cerr := Coerce(ext.Raw, def.ExpectedType, def.Format)
			if cerr != nil {
				verr.Add(cerr.Detail(loc, ext.Raw))
				continue
			}
			params[def.Name] = value
		}
	}

	if verr.HasErrors() {
		v.logger.Debug("validation: parameters rejected",
			"route", v.name, "phase", "coercion", "errors", len(verr.Errors))
		return nil, verr
	}

	structural, err := v.structuralValidator()
	if err != nil {
		return nil, &ValidationError{Errors: []ValidationErrorDetail{NewSchemaError(err)}}
	}

	if serr := structural.Validate(params); serr.HasErrors() {
		v.logger.Debug("validation: parameters rejected",
			"route", v.name, "phase", "structural", "errors", len(serr.Errors))
		return nil, &ValidationError{Errors: Remap(serr.Errors, v.definitions, raw)}
	}

	return params, nil
}

// structuralValidator compiles the stripped schema on first use.
func (v *ParameterValidator) structuralValidator() (StructuralValidator, error) {
	v.once.Do(func() {
		stripped, err := StructuralSchema(v.schema)
		if err == nil {
			v.structural, err = v.compile(stripped)
		}
		if err != nil {
			v.schemaError = err
			v.logger.Warn("validation: structural schema compilation failed",
				"route", v.name, "error", err)
		}
	})
	return v.structural, v.schemaError
}
