package jit

import (
	"fmt"
	"strings"
)

// CompilationError reports that the external compiler could not produce
// a specialization for a signature chosen by a UseCompiled directive.
// Compiler implementations may return any error type; this one is
// offered for the common case. Whatever the compiler returns propagates
// to the caller unchanged.
type CompilationError struct {
	Function  string
	Signature Signature
	Reason    string
}

// Error implements error.
func (e *CompilationError) Error() string {
	return fmt.Sprintf("cannot compile %s for argument type(s) %s: %s",
		e.Function, e.Signature.typeList(), e.Reason)
}

// NoMatchError reports a call whose signature has no specialization and
// was refused: either the policy returned RaiseError, or the
// configuration's ahead-of-time signature set is closed and the call
// matched none of it.
//
// The message format matches the external compiler's own unmatched-
// signature errors, so tooling that pattern-matches on it keeps working.
type NoMatchError struct {
	Signature Signature
}

// Error implements error.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("No matching definition for argument type(s) %s", e.Signature.typeList())
}

// InvalidDirectiveError reports a policy that returned a value outside
// the closed directive set. This is a programming error in the policy,
// not a property of the call's arguments.
type InvalidDirectiveError struct {
	Function string
	Value    Directive
}

// Error implements error.
func (e *InvalidDirectiveError) Error() string {
	names := make([]string, len(validDirectives))
	for i, d := range validDirectives {
		names[i] = d.String()
	}
	return fmt.Sprintf("invalid directive %v returned by the policy for %s: expected one of %s",
		e.Value, e.Function, strings.Join(names, ", "))
}
