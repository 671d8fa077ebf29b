package pyrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want string
	}{
		{"null", cty.NullVal(cty.String), "None"},
		{"string", cty.StringVal("hello"), "'hello'"},
		{"string with quote", cty.StringVal("it's"), `'it\'s'`},
		{"string with newline", cty.StringVal("a\nb"), `'a\nb'`},
		{"integer", cty.NumberIntVal(42), "42"},
		{"float", cty.NumberFloatVal(2.5), "2.5"},
		{"negative", cty.NumberIntVal(-7), "-7"},
		{"true", cty.True, "True"},
		{"false", cty.False, "False"},
		{"list", cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}), "[1, 2]"},
		{"tuple", cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}), "['a', 1]"},
		{"object", cty.ObjectVal(map[string]cty.Value{"b": cty.NumberIntVal(2), "a": cty.NumberIntVal(1)}), "{'a': 1, 'b': 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Literal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWord(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want string
	}{
		{"string stays raw", cty.StringVal("data.csv"), "data.csv"},
		{"integer", cty.NumberIntVal(5), "5"},
		{"bool", cty.True, "True"},
		{"null", cty.NullVal(cty.String), "None"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Word(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-scalar rejected", func(t *testing.T) {
		_, err := Word(cty.ListVal([]cty.Value{cty.NumberIntVal(1)}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be scalar")
	})
}
