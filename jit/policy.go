package jit

import "reflect"

// Policy decides the execution route for an uncached call signature. It
// receives the call's argument values and returns exactly one Directive.
//
// A policy is evaluated fresh on every call whose signature has no
// registered specialization; it is never consulted once a specialization
// exists for the signature. Policies should be pure functions of their
// arguments. A stateful policy (e.g. one counting calls) is permitted at
// the caller's own risk: the dispatcher offers no synchronization for
// concurrent invocations. Policies must not mutate the registry.
type Policy func(args []any) Directive

// AlwaysCompiled is the default policy when none is configured and no
// ahead-of-time signatures were given: every new signature is compiled,
// preserving the external compiler's standard behavior.
func AlwaysCompiled(args []any) Directive { return UseCompiled }

// AlwaysInterpreted routes every new signature to the interpreted path.
func AlwaysInterpreted(args []any) Directive { return UseInterpreted }

// AlwaysRaise refuses every new signature. It is the implicit policy for
// configurations that list ahead-of-time signatures without a policy: the
// signature set is closed and anything outside it is a no-match error.
func AlwaysRaise(args []any) Directive { return RaiseError }

// LengthThreshold builds a policy that interprets small inputs and
// compiles large ones: if the first argument has a length (slice, array,
// map, string, or channel) at most max, the call is interpreted;
// otherwise it is compiled. Calls with no arguments or a first argument
// without a length are compiled.
func LengthThreshold(max int) Policy {
	return func(args []any) Directive {
		if len(args) == 0 {
			return UseCompiled
		}
		v := reflect.ValueOf(args[0])
		switch v.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
			if v.Len() <= max {
				return UseInterpreted
			}
		}
		return UseCompiled
	}
}
