package jit

// Interpreted is the original, uncompiled implementation of a dispatched
// function. It receives the call's arguments unchanged.
type Interpreted func(args ...any) (any, error)

// TypeResolver is the external compiler's type-inference facility: it
// maps an argument value to its type descriptor.
type TypeResolver interface {
	TypeOf(v any) (Type, error)
}

// Compiler is the external compilation collaborator. The dispatcher
// requests specializations from it and otherwise treats compiled units
// as opaque.
//
// Compile produces a specialization of impl for exactly sig. The opts
// map carries pass-through options from the dispatch configuration,
// unexamined by the dispatcher. A compiler that cannot produce a
// specialization returns an error (CompilationError fits); the
// dispatcher propagates it unchanged, never downgrading to interpreted
// execution.
type Compiler interface {
	TypeResolver
	Compile(function string, impl Interpreted, sig Signature, opts map[string]string) (Specialization, error)
}

// Specialization is a compiled, type-specialized executable unit bound
// to exactly one Signature. It is produced and owned by the external
// compiler; the dispatcher only looks it up and invokes it.
type Specialization interface {
	// ID identifies this compiled unit for diagnostics and tracing.
	ID() string
	// Signature returns the one signature this unit was compiled for.
	Signature() Signature
	// Call runs the compiled code with the original call arguments.
	Call(args ...any) (any, error)
}
