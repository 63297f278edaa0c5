package config

import (
	"errors"
	"fmt"

	"github.com/getmockd/reqparam/pkg/validation"
)

// Errors reported for route sets and tables.
var (
	ErrDuplicateRoute = errors.New("duplicate route name")
	ErrUnknownRoute   = errors.New("unknown route")
)

// Route declares the parameter contract of one endpoint. Method and Path are
// informational; routing is done elsewhere.
type Route struct {
	Name       string         `json:"name" yaml:"name"`
	Method     string         `json:"method,omitempty" yaml:"method,omitempty"`
	Path       string         `json:"path,omitempty" yaml:"path,omitempty"`
	Parameters map[string]any `json:"parameters" yaml:"parameters"`

	// PropertyOrder lists parameter names in file order. It is filled by the
	// loaders; empty means definitions are sorted by name.
	PropertyOrder []string `json:"-" yaml:"-"`
}

// RouteSet is the top-level shape of a route file.
type RouteSet struct {
	Routes []Route `json:"routes" yaml:"routes"`
}

// Validate checks that every route has a unique name and a parameter schema.
// Schema contents are checked by Compile.
func (s *RouteSet) Validate() error {
	seen := make(map[string]bool, len(s.Routes))
	for i, r := range s.Routes {
		if r.Name == "" {
			return fmt.Errorf("routes[%d]: name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, r.Name)
		}
		seen[r.Name] = true
		if r.Parameters == nil {
			return fmt.Errorf("route %q: parameters are required", r.Name)
		}
	}
	return nil
}

// RouteTable holds one compiled validator per route. It is read-only after
// Compile and may be shared by any number of goroutines.
type RouteTable struct {
	routes     map[string]Route
	validators map[string]*validation.ParameterValidator
	names      []string
}

// Compile builds a validator for every route. The first malformed schema
// aborts compilation with an error wrapping *validation.ConfigError.
func (s *RouteSet) Compile(opts ...validation.Option) (*RouteTable, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	table := &RouteTable{
		routes:     make(map[string]Route, len(s.Routes)),
		validators: make(map[string]*validation.ParameterValidator, len(s.Routes)),
		names:      make([]string, 0, len(s.Routes)),
	}

	for _, r := range s.Routes {
		routeOpts := append(append([]validation.Option{}, opts...),
			validation.WithName(r.Name),
			validation.WithPropertyOrder(r.PropertyOrder))
		v, err := validation.NewParameterValidator(r.Parameters, routeOpts...)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.Name, err)
		}
		table.routes[r.Name] = r
		table.validators[r.Name] = v
		table.names = append(table.names, r.Name)
	}
	return table, nil
}

// Lookup returns the validator for a route.
func (t *RouteTable) Lookup(name string) (*validation.ParameterValidator, error) {
	v, ok := t.validators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return v, nil
}

// Route returns the declaration a validator was built from.
func (t *RouteTable) Route(name string) (Route, bool) {
	r, ok := t.routes[name]
	return r, ok
}

// Names returns route names in declaration order.
func (t *RouteTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
