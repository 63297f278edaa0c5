package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_id": map[string]any{"type": "integer", "source": "path"},
			"page":    map[string]any{"type": "integer", "source": "query", "default": 1},
			"since":   map[string]any{"type": "string", "format": "date", "source": "query"},
			"x_token": map[string]any{"type": "string", "source": "header"},
			"session": map[string]any{"type": "string", "source": "cookie", "optional": true},
			"ids": map[string]any{
				"type":   "array",
				"source": "query",
				"items":  map[string]any{"type": "integer"},
			},
		},
		"required": []any{"x_token", "session", "ids"},
	}

	defs, err := Analyze(schema)
	require.NoError(t, err)
	require.Len(t, defs, 6)

	byName := make(map[string]*ParameterDefinition)
	var order []string
	for i := range defs {
		byName[defs[i].Name] = &defs[i]
		order = append(order, defs[i].Name)
	}
	assert.Equal(t, []string{"ids", "page", "session", "since", "user_id", "x_token"}, order)

	assert.Equal(t, SourcePath, byName["user_id"].Source)
	assert.True(t, byName["user_id"].Required, "path parameters are always required")

	assert.False(t, byName["page"].Required)
	assert.True(t, byName["page"].HasDefault)
	assert.Equal(t, 1, byName["page"].Default)

	assert.Equal(t, "date", byName["since"].Format)
	assert.Equal(t, "string", byName["since"].ExpectedType)

	assert.True(t, byName["x_token"].Required)
	assert.Equal(t, SourceHeader, byName["x_token"].Source)
	assert.Equal(t, "x-token", byName["x_token"].LookupName())

	assert.False(t, byName["session"].Required, "optional overrides required")

	assert.True(t, byName["ids"].IsArray())
	assert.Equal(t, "integer", byName["ids"].ItemType)
}

func TestAnalyzeOrdered(t *testing.T) {
	schema := map[string]any{
		"properties": map[string]any{
			"b": map[string]any{"type": "string", "source": "query"},
			"a": map[string]any{"type": "string", "source": "query"},
			"d": map[string]any{"type": "string", "source": "query"},
			"c": map[string]any{"type": "string", "source": "query"},
		},
	}

	defs, err := AnalyzeOrdered(schema, []string{"d", "b", "gone", "d"})
	require.NoError(t, err)

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, names)
}

func TestAnalyze_PathAlwaysRequired(t *testing.T) {
	for _, required := range []any{nil, []any{}, []any{"other"}} {
		schema := map[string]any{
			"properties": map[string]any{
				"id":    map[string]any{"type": "string", "source": "path", "optional": true},
				"other": map[string]any{"type": "string", "source": "query"},
			},
		}
		if required != nil {
			schema["required"] = required
		}

		defs, err := Analyze(schema)
		require.NoError(t, err)
		for _, d := range defs {
			if d.Name == "id" {
				assert.True(t, d.Required)
			}
		}
	}
}

func TestAnalyze_RequiredAsStringSlice(t *testing.T) {
	defs, err := Analyze(map[string]any{
		"properties": map[string]any{
			"q": map[string]any{"type": "string", "source": "query"},
		},
		"required": []string{"q"},
	})
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.True(t, defs[0].Required)
}

func TestAnalyze_ConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		schema   map[string]any
		property string
		contains string
	}{
		{
			name:     "missing properties",
			schema:   map[string]any{"type": "object"},
			contains: "no 'properties'",
		},
		{
			name:     "properties not an object",
			schema:   map[string]any{"properties": []any{"a"}},
			contains: "must be an object",
		},
		{
			name: "missing source",
			schema: map[string]any{"properties": map[string]any{
				"q": map[string]any{"type": "string"},
			}},
			property: "q",
			contains: "missing 'source'",
		},
		{
			name: "unknown source",
			schema: map[string]any{"properties": map[string]any{
				"q": map[string]any{"type": "string", "source": "body"},
			}},
			property: "q",
			contains: "unknown source",
		},
		{
			name: "source not a string",
			schema: map[string]any{"properties": map[string]any{
				"q": map[string]any{"type": "string", "source": 1},
			}},
			property: "q",
			contains: "missing 'source'",
		},
		{
			name: "property not an object",
			schema: map[string]any{"properties": map[string]any{
				"q": "string",
			}},
			property: "q",
			contains: "must be an object",
		},
		{
			name: "required not an array",
			schema: map[string]any{
				"properties": map[string]any{"q": map[string]any{"source": "query"}},
				"required":   "q",
			},
			contains: "'required' must be an array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Analyze(tt.schema)
			require.Error(t, err)
			assert.Nil(t, defs)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.property, cfgErr.Property)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParameterSource(t *testing.T) {
	tests := []struct {
		tag      string
		source   ParameterSource
		location string
	}{
		{"query", SourceQuery, "query"},
		{"path", SourcePath, "path"},
		{"header", SourceHeader, "headers"},
		{"cookie", SourceCookie, "cookie"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			s, err := ParseSource(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.source, s)
			assert.Equal(t, tt.tag, s.String())
			assert.Equal(t, tt.location, s.Location())
		})
	}

	_, err := ParseSource("Header")
	assert.Error(t, err)
}

func TestNormalizeHeaderName(t *testing.T) {
	assert.Equal(t, "x-token", NormalizeHeaderName("x_token"))
	assert.Equal(t, "x-request-id", NormalizeHeaderName("X_Request_ID"))
	assert.Equal(t, "authorization", NormalizeHeaderName("Authorization"))
	assert.Equal(t, "user_id", SourceQuery.LookupName("user_id"))
	assert.Equal(t, "User_ID", SourceCookie.LookupName("User_ID"))
}
