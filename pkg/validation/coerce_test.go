package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_Boolean(t *testing.T) {
	tests := []struct {
		raw       string
		want      bool
		wantError bool
	}{
		{raw: "True", want: true},
		{raw: "TRUE", want: true},
		{raw: "true", want: true},
		{raw: "1", want: true},
		{raw: "false", want: false},
		{raw: "False", want: false},
		{raw: "0", want: false},
		{raw: "", want: false},
		{raw: "yes", wantError: true},
		{raw: "no", wantError: true},
		{raw: "2", wantError: true},
		{raw: " true", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Coerce(tt.raw, "boolean", "")
			if tt.wantError {
				require.NotNil(t, err)
				assert.Equal(t, ErrTypeBoolParsing, err.Type)
				assert.Nil(t, got)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Integer(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      int64
		wantError bool
	}{
		{name: "positive", raw: "42", want: 42},
		{name: "negative", raw: "-7", want: -7},
		{name: "plus sign", raw: "+3", want: 3},
		{name: "max int64", raw: "9223372036854775807", want: 9223372036854775807},
		{name: "overflow", raw: "9223372036854775808", wantError: true},
		{name: "decimal", raw: "1.5", wantError: true},
		{name: "letters", raw: "abc", wantError: true},
		{name: "empty string is not lenient", raw: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, "integer", "")
			if tt.wantError {
				require.NotNil(t, err)
				assert.Equal(t, ErrTypeIntParsing, err.Type)
				assert.Contains(t, err.Message, "valid integer")
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Number(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      float64
		wantError bool
	}{
		{name: "decimal", raw: "3.14", want: 3.14},
		{name: "integer text", raw: "10", want: 10},
		{name: "exponent", raw: "1e3", want: 1000},
		{name: "negative", raw: "-0.5", want: -0.5},
		{name: "infinity rejected", raw: "inf", wantError: true},
		{name: "nan rejected", raw: "NaN", wantError: true},
		{name: "letters", raw: "abc", wantError: true},
		{name: "empty", raw: "", wantError: true},
		{name: "hex float rejected", raw: "0x1p3", wantError: true},
		{name: "signed hex float rejected", raw: "-0X1P-2", wantError: true},
		{name: "leading zero", raw: "0.25", want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, "number", "")
			if tt.wantError {
				require.NotNil(t, err)
				assert.Equal(t, ErrTypeFloatParsing, err.Type)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCoerce_StringPassthrough(t *testing.T) {
	for _, typ := range []string{"string", "", "object", "unknown"} {
		got, err := Coerce("hello world", typ, "")
		require.Nil(t, err, "type %q", typ)
		assert.Equal(t, "hello world", got, "type %q", typ)
	}
}

func TestCoerce_FormatTakesPrecedenceOverType(t *testing.T) {
	got, err := Coerce("2023-01-15", "integer", "date")
	require.Nil(t, err)
	assert.Equal(t, "2023-01-15", got)

	_, err = Coerce("not-a-date", "string", "date")
	require.NotNil(t, err)
	assert.Equal(t, ErrTypeDateParsing, err.Type)
}

func TestCoerce_UnknownFormatFallsBackToType(t *testing.T) {
	got, err := Coerce("5", "integer", "email")
	require.Nil(t, err)
	assert.Equal(t, int64(5), got)
}

func TestCoerceItems(t *testing.T) {
	def := &ParameterDefinition{Name: "ids", Source: SourceQuery, ExpectedType: "array", ItemType: "integer"}

	t.Run("string items are coerced", func(t *testing.T) {
		verr := &ValidationError{}
		got := coerceItems(def, []any{"1", "2"}, verr)
		assert.False(t, verr.HasErrors())
		assert.Equal(t, []any{int64(1), int64(2)}, got)
	})

	t.Run("typed items pass through", func(t *testing.T) {
		verr := &ValidationError{}
		got := coerceItems(def, []any{float64(1), int64(2)}, verr)
		assert.False(t, verr.HasErrors())
		assert.Equal(t, []any{float64(1), int64(2)}, got)
	})

	t.Run("bad items are located by index", func(t *testing.T) {
		verr := &ValidationError{}
		coerceItems(def, []any{"1", "x", "y"}, verr)
		require.Len(t, verr.Errors, 2)
		assert.Equal(t, []string{"query", "ids", "1"}, verr.Errors[0].Loc)
		assert.Equal(t, "x", verr.Errors[0].Input)
		assert.Equal(t, ErrTypeIntParsing, verr.Errors[0].Type)
		assert.Equal(t, []string{"query", "ids", "2"}, verr.Errors[1].Loc)
	})

	t.Run("no item schema leaves items untouched", func(t *testing.T) {
		plain := &ParameterDefinition{Name: "tags", Source: SourceQuery, ExpectedType: "array"}
		verr := &ValidationError{}
		got := coerceItems(plain, []any{"a", "1"}, verr)
		assert.False(t, verr.HasErrors())
		assert.Equal(t, []any{"a", "1"}, got)
	})
}
