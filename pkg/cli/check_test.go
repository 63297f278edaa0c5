package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCheckFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		queryArgs, pathArgs, headerArgs, cookieArgs = nil, nil, nil, nil
		queryJSON = ""
	})
}

func TestBuildInputs(t *testing.T) {
	resetCheckFlags(t)
	queryArgs = []string{"ids=1", "ids=2", "q=a=b", "page=3"}
	pathArgs = []string{"user_id=42"}
	headerArgs = []string{"X_Request_ID=r1", "Accept=json"}
	cookieArgs = []string{"session=s"}

	inputs, err := buildInputs()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"ids": "2", "q": "a=b", "page": "3"}, inputs.Query)
	assert.Equal(t, map[string]any{"ids": []any{"1", "2"}, "q": "a=b", "page": "3"}, inputs.QueryJSON)
	assert.Equal(t, map[string]string{"user_id": "42"}, inputs.Path)
	assert.Equal(t, map[string]string{"x-request-id": "r1", "accept": "json"}, inputs.Headers)
	assert.Equal(t, map[string]string{"session": "s"}, inputs.Cookies)
}

func TestBuildInputs_QueryJSON(t *testing.T) {
	resetCheckFlags(t)
	queryArgs = []string{"ids=1"}
	queryJSON = `{"ids": [7, "8"], "filter": {"a": true}}`

	inputs, err := buildInputs()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(7), "8"}, inputs.QueryJSON["ids"])
	assert.Equal(t, map[string]any{"a": true}, inputs.QueryJSON["filter"])
}

func TestBuildInputs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		contains string
	}{
		{name: "query without equals", setup: func() { queryArgs = []string{"oops"} }, contains: "--query"},
		{name: "empty header key", setup: func() { headerArgs = []string{"=v"} }, contains: "--header"},
		{name: "bad query json", setup: func() { queryJSON = `{"ids": [` }, contains: "--query-json"},
		{name: "query json not an object", setup: func() { queryJSON = `[1, 2]` }, contains: "JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCheckFlags(t)
			tt.setup()
			_, err := buildInputs()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
