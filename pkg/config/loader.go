package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Common errors for route file loading.
var (
	ErrFileNotFound     = errors.New("route file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("route file is empty")
	ErrNoRouteFiles     = errors.New("no route files matched")
)

// EnvRoutes names the route file or glob used when none is given explicitly.
const EnvRoutes = "REQPARAM_ROUTES"

// LoadRoutes loads a single route file, or every file matching a glob pattern
// when the argument contains glob metacharacters.
func LoadRoutes(pathOrPattern string) (*RouteSet, error) {
	if pathOrPattern == "" {
		return nil, errors.New("no route file given (use --routes or " + EnvRoutes + ")")
	}
	if strings.ContainsAny(pathOrPattern, "*?[{") {
		return LoadRoutesFromGlob(pathOrPattern)
	}
	return LoadRoutesFromFile(pathOrPattern)
}

// LoadRoutesFromFile reads a RouteSet from a JSON or YAML file.
// The format is auto-detected based on file extension (.yaml, .yml for YAML, otherwise JSON).
func LoadRoutesFromFile(path string) (*RouteSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		set, err := ParseRoutesYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return set, nil
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	set, err := ParseRoutesJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadRoutesFromGlob loads and merges every route file matching pattern, in
// lexical path order. Supports ** for recursive directory matching.
func LoadRoutesFromGlob(pattern string) (*RouteSet, error) {
	matches, err := expandGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRouteFiles, pattern)
	}
	sort.Strings(matches)

	merged := &RouteSet{}
	for _, match := range matches {
		set, err := LoadRoutesFromFile(match)
		if err != nil {
			return nil, err
		}
		merged.Routes = append(merged.Routes, set.Routes...)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// expandGlob expands a glob pattern to a list of matching file paths.
func expandGlob(pattern string) ([]string, error) {
	// FilepathGlob returns matches using the OS path separator
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
}

// ParseRoutesJSON parses JSON bytes into a validated RouteSet.
func ParseRoutesJSON(data []byte) (*RouteSet, error) {
	var set RouteSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	applyPropertyOrder(&set, data)
	return &set, nil
}

// ParseRoutesYAML parses YAML bytes into a validated RouteSet.
func ParseRoutesYAML(data []byte) (*RouteSet, error) {
	var set RouteSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	applyPropertyOrder(&set, data)
	return &set, nil
}

// applyPropertyOrder records the order properties are written in for each
// route. JSON is read through the YAML parser, which accepts it. Files the
// node walk cannot follow keep name order.
func applyPropertyOrder(set *RouteSet, data []byte) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return
	}
	routes := mappingValue(doc.Content[0], "routes")
	if routes == nil || routes.Kind != yaml.SequenceNode || len(routes.Content) != len(set.Routes) {
		return
	}
	for i, route := range routes.Content {
		props := mappingValue(mappingValue(route, "parameters"), "properties")
		if props == nil || props.Kind != yaml.MappingNode {
			continue
		}
		order := make([]string, 0, len(props.Content)/2)
		for j := 0; j+1 < len(props.Content); j += 2 {
			order = append(order, props.Content[j].Value)
		}
		set.Routes[i].PropertyOrder = order
	}
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

