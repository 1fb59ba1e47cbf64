package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackWarning_Message(t *testing.T) {
	w := FallbackWarning{
		Function:  "double",
		Signature: NewSignature("string"),
	}
	assert.Equal(t, "double(string) not using JIT", w.Message())

	w = FallbackWarning{
		Function:  "add",
		Signature: NewSignature("int", "int"),
	}
	assert.Equal(t, "add(int, int) not using JIT", w.Message())
}

func TestSetWarningHandler_ReturnsPrevious(t *testing.T) {
	var seen []string
	first := func(w FallbackWarning) { seen = append(seen, "first:"+w.Function) }
	second := func(w FallbackWarning) { seen = append(seen, "second:"+w.Function) }

	original := SetWarningHandler(first)
	defer SetWarningHandler(original)

	warn(FallbackWarning{Function: "a"})
	prev := SetWarningHandler(second)
	warn(FallbackWarning{Function: "b"})
	SetWarningHandler(prev)
	warn(FallbackWarning{Function: "c"})

	assert.Equal(t, []string{"first:a", "second:b", "first:c"}, seen)
}

func TestSetWarningHandler_NilInstallsNoop(t *testing.T) {
	original := SetWarningHandler(nil)
	defer SetWarningHandler(original)

	// Must not panic.
	warn(FallbackWarning{Function: "f", Signature: NewSignature("int")})
}
