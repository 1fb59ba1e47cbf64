package jit

import (
	"fmt"
	"strings"
)

// Type is a single argument type descriptor as produced by the external
// compiler's type inference (TypeResolver.TypeOf). Descriptors are opaque
// to the dispatcher; two arguments dispatch alike exactly when their
// descriptors are equal.
type Type string

// Signature is an ordered sequence of argument type descriptors derived
// from a call's actual argument values. Equality is structural: same
// types in the same order. A Signature is immutable once built.
type Signature struct {
	types []Type
	key   string
}

// NewSignature builds a Signature from argument type descriptors in call
// order.
func NewSignature(types ...Type) Signature {
	owned := make([]Type, len(types))
	copy(owned, types)
	return Signature{types: owned, key: signatureKey(owned)}
}

func signatureKey(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Len returns the number of arguments in the signature.
func (s Signature) Len() int {
	return len(s.types)
}

// Types returns a copy of the argument type descriptors in call order.
func (s Signature) Types() []Type {
	out := make([]Type, len(s.types))
	copy(out, s.types)
	return out
}

// Key returns the canonical string form, e.g. "(int64, float64)". Two
// signatures are equal exactly when their keys are equal.
func (s Signature) Key() string {
	if s.key == "" {
		return "()"
	}
	return s.key
}

// String implements fmt.Stringer with the canonical key form.
func (s Signature) String() string {
	return s.Key()
}

// Equal reports structural equality with other.
func (s Signature) Equal(other Signature) bool {
	return s.Key() == other.Key()
}

// typeList renders the types comma-joined without parentheses, the form
// used in error and warning messages.
func (s Signature) typeList() string {
	parts := make([]string, len(s.types))
	for i, t := range s.types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// ParseSignature parses the canonical string form back into a Signature.
// Outer parentheses are optional: both "(int64, int64)" and
// "int64, int64" are accepted, as is "()" for a zero-argument signature.
// Type descriptors containing commas (e.g. function types) are not
// representable in this form and must be built with NewSignature.
func ParseSignature(s string) (Signature, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "(") {
		if !strings.HasSuffix(trimmed, ")") {
			return Signature{}, fmt.Errorf("malformed signature %q: unbalanced parentheses", s)
		}
		trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}
	if trimmed == "" {
		return NewSignature(), nil
	}
	parts := strings.Split(trimmed, ",")
	types := make([]Type, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Signature{}, fmt.Errorf("malformed signature %q: empty type at position %d", s, i)
		}
		types[i] = Type(p)
	}
	return NewSignature(types...), nil
}

// SignatureOf derives the Signature for a call's arguments using the
// external compiler's type inference.
func SignatureOf(resolver TypeResolver, args []any) (Signature, error) {
	types := make([]Type, len(args))
	for i, a := range args {
		t, err := resolver.TypeOf(a)
		if err != nil {
			return Signature{}, fmt.Errorf("inferring type of argument %d: %w", i, err)
		}
		types[i] = t
	}
	return NewSignature(types...), nil
}
