package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_KeyAndEquality(t *testing.T) {
	a := NewSignature("int64", "float64")
	b := NewSignature("int64", "float64")
	c := NewSignature("float64", "int64")

	assert.Equal(t, "(int64, float64)", a.Key())
	assert.Equal(t, a.Key(), a.String())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "order matters")
	assert.Equal(t, 2, a.Len())
}

func TestSignature_ZeroArguments(t *testing.T) {
	empty := NewSignature()
	assert.Equal(t, "()", empty.Key())
	assert.Zero(t, empty.Len())
	assert.True(t, empty.Equal(Signature{}), "zero value behaves as the empty signature")
}

func TestSignature_TypesReturnsCopy(t *testing.T) {
	sig := NewSignature("int", "string")
	types := sig.Types()
	types[0] = "mutated"
	assert.Equal(t, "(int, string)", sig.Key())
	assert.Equal(t, []Type{"int", "string"}, sig.Types())
}

func TestNewSignature_CopiesInput(t *testing.T) {
	types := []Type{"int", "int"}
	sig := NewSignature(types...)
	types[0] = "mutated"
	assert.Equal(t, "(int, int)", sig.Key())
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"parenthesized", "(int64, int64)", "(int64, int64)"},
		{"bare", "int64, float64", "(int64, float64)"},
		{"single", "string", "(string)"},
		{"empty parens", "()", "()"},
		{"blank", "  ", "()"},
		{"uneven spacing", "( int64 ,float64 )", "(int64, float64)"},
		{"slice type", "([]float64)", "([]float64)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := ParseSignature(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sig.Key())
		})
	}
}

func TestParseSignature_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced", "(int64, int64"},
		{"empty type", "int64,,float64"},
		{"trailing comma", "int64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignature(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSignatureOf(t *testing.T) {
	compiler := &stubCompiler{}

	sig, err := SignatureOf(compiler, []any{1, 2.5, "x", []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, "(int, float64, string, []float64)", sig.Key())

	sig, err = SignatureOf(compiler, nil)
	require.NoError(t, err)
	assert.Equal(t, "()", sig.Key())

	_, err = SignatureOf(compiler, []any{1, nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 1")
}
