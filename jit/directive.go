package jit

import "fmt"

// Directive is the decision returned by a Policy for an uncached call
// signature. The set is closed: any other value is a programming error
// in the policy and surfaces as InvalidDirectiveError.
type Directive int

const (
	// UseInterpreted runs the original, uncompiled implementation.
	UseInterpreted Directive = iota + 1
	// UseCompiled compiles a specialization for the call's signature and
	// runs it.
	UseCompiled
	// RaiseError refuses the call with a no-match error.
	RaiseError
)

// validDirectives lists the closed set, in declaration order, for
// diagnostics.
var validDirectives = []Directive{UseInterpreted, UseCompiled, RaiseError}

// Valid reports whether d is a member of the closed directive set.
func (d Directive) Valid() bool {
	switch d {
	case UseInterpreted, UseCompiled, RaiseError:
		return true
	}
	return false
}

// String returns the directive name, or "Directive(n)" for values
// outside the closed set.
func (d Directive) String() string {
	switch d {
	case UseInterpreted:
		return "UseInterpreted"
	case UseCompiled:
		return "UseCompiled"
	case RaiseError:
		return "RaiseError"
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}
