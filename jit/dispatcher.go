package jit

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/smartjit/smartjit/jit/event"
)

// Config bundles the per-function dispatch options. It is read once by
// New and never mutated afterwards; only the registry grows as new
// signatures compile.
type Config struct {
	// Policy decides the route for uncached signatures. Nil selects the
	// default: AlwaysCompiled, or AlwaysRaise when Signatures are given
	// (an explicit signature list closes the signature set, matching the
	// compiler's behavior for eagerly declared signatures).
	Policy Policy

	// WarnOnFallback emits a FallbackWarning whenever a call takes the
	// interpreted path. Default false.
	WarnOnFallback bool

	// Signatures lists ahead-of-time signatures to compile and register
	// at construction, before any call arrives.
	Signatures []Signature

	// Options is passed through to the compiler verbatim, unexamined.
	Options map[string]string

	// Registry overrides the specialization cache. Nil selects a fresh
	// MemoryRegistry.
	Registry Registry
}

// Dispatcher routes calls to one logical function between its compiled
// and interpreted implementations. Build one with New; the zero value is
// not usable.
//
// Per call, the route is decided in order: an exact-signature match in
// the registry always wins and never consults the policy; otherwise the
// policy's directive governs — compile and register, interpret, or
// refuse. See Invoke.
type Dispatcher struct {
	name           string
	impl           Interpreted
	compiler       Compiler
	registry       Registry
	policy         Policy
	warnOnFallback bool
	options        map[string]string
}

// New builds a Dispatcher for the named function. impl is the
// interpreted implementation; compiler is the external compilation
// collaborator. Ahead-of-time signatures in cfg are compiled eagerly,
// without consulting the policy; a failed eager compilation aborts
// construction.
func New(name string, impl Interpreted, compiler Compiler, cfg Config) (*Dispatcher, error) {
	if name == "" {
		return nil, fmt.Errorf("dispatcher requires a function name")
	}
	if impl == nil {
		return nil, fmt.Errorf("dispatcher %s requires an interpreted implementation", name)
	}
	if compiler == nil {
		return nil, fmt.Errorf("dispatcher %s requires a compiler", name)
	}

	registry := cfg.Registry
	if registry == nil {
		registry = NewMemoryRegistry()
	}

	policy := cfg.Policy
	if policy == nil {
		if len(cfg.Signatures) > 0 {
			policy = AlwaysRaise
		} else {
			policy = AlwaysCompiled
		}
	}

	d := &Dispatcher{
		name:           name,
		impl:           impl,
		compiler:       compiler,
		registry:       registry,
		policy:         policy,
		warnOnFallback: cfg.WarnOnFallback,
		options:        cfg.Options,
	}

	for _, sig := range cfg.Signatures {
		spec, err := compiler.Compile(name, impl, sig, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("eager compilation of %s%s: %w", name, sig, err)
		}
		registry.Register(spec)
		logrus.Debugf("registered eager specialization %s for %s%s", spec.ID(), name, sig)
	}

	return d, nil
}

// Name returns the dispatched function's name.
func (d *Dispatcher) Name() string {
	return d.name
}

// Signatures returns a read-only snapshot of the signatures currently
// registered for this function.
func (d *Dispatcher) Signatures() []Signature {
	return d.registry.Signatures()
}

// Invoke routes one call.
//
// The signature is derived from args via the compiler's type inference,
// then: an exact registry match runs compiled immediately (the policy is
// not consulted, so a known-good signature stays deterministic with
// respect to the policy). On a miss the policy's directive governs:
// UseCompiled compiles, registers, and runs; UseInterpreted runs the
// original implementation, warning first when configured; RaiseError
// returns a NoMatchError; anything else returns an
// InvalidDirectiveError. Compilation failures propagate unchanged and
// are never downgraded to interpreted execution.
//
// Start and end notifications bracket every execution on both paths; the
// end notification fires even when the call fails.
func (d *Dispatcher) Invoke(args ...any) (any, error) {
	sig, err := SignatureOf(d.compiler, args)
	if err != nil {
		return nil, err
	}

	if spec, ok := d.registry.Lookup(sig); ok {
		return d.runCompiled(spec, args)
	}

	directive := d.policy(args)
	switch directive {
	case UseCompiled:
		spec, err := d.compiler.Compile(d.name, d.impl, sig, d.options)
		if err != nil {
			return nil, err
		}
		d.registry.Register(spec)
		logrus.Debugf("registered specialization %s for %s%s", spec.ID(), d.name, sig)
		return d.runCompiled(spec, args)
	case UseInterpreted:
		if d.warnOnFallback {
			warn(FallbackWarning{Function: d.name, Signature: sig})
		}
		return d.runInterpreted(args)
	case RaiseError:
		return nil, &NoMatchError{Signature: sig}
	default:
		return nil, &InvalidDirectiveError{Function: d.name, Value: directive}
	}
}

func (d *Dispatcher) runCompiled(spec Specialization, args []any) (result any, err error) {
	event.Start(event.KindJIT, d.name)
	defer func() { event.End(event.KindJIT, d.name, err) }()
	return spec.Call(args...)
}

func (d *Dispatcher) runInterpreted(args []any) (result any, err error) {
	event.Start(event.KindInterpreter, d.name)
	defer func() { event.End(event.KindInterpreter, d.name, err) }()
	return d.impl(args...)
}
