package cmd

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smartjit/smartjit/jit"
)

// demoCompiler is a demonstration-grade stand-in for a real specializing
// compiler. Type inference is reflect-based; "compiling" produces a unit
// that checks the call's argument types against its signature and then
// runs the original implementation. The dispatcher treats it like any
// external compiler.
type demoCompiler struct {
	mu       sync.Mutex
	compiles int
}

func newDemoCompiler() *demoCompiler {
	return &demoCompiler{}
}

// TypeOf implements jit.TypeResolver.
func (c *demoCompiler) TypeOf(v any) (jit.Type, error) {
	if v == nil {
		return "", fmt.Errorf("cannot infer the type of an untyped nil argument")
	}
	return jit.Type(reflect.TypeOf(v).String()), nil
}

// Compile implements jit.Compiler.
func (c *demoCompiler) Compile(function string, impl jit.Interpreted, sig jit.Signature, opts map[string]string) (jit.Specialization, error) {
	if impl == nil {
		return nil, &jit.CompilationError{
			Function:  function,
			Signature: sig,
			Reason:    "no implementation to specialize",
		}
	}
	c.mu.Lock()
	c.compiles++
	n := c.compiles
	c.mu.Unlock()

	id := uuid.NewString()
	logrus.Debugf("compiled %s%s as %s (compilation #%d)", function, sig, id, n)
	return &demoSpecialization{
		id:       id,
		function: function,
		sig:      sig,
		impl:     impl,
		resolver: c,
	}, nil
}

// compileCount returns how many specializations this compiler produced.
func (c *demoCompiler) compileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

type demoSpecialization struct {
	id       string
	function string
	sig      jit.Signature
	impl     jit.Interpreted
	resolver jit.TypeResolver
}

// ID implements jit.Specialization.
func (s *demoSpecialization) ID() string { return s.id }

// Signature implements jit.Specialization.
func (s *demoSpecialization) Signature() jit.Signature { return s.sig }

// Call implements jit.Specialization. A compiled unit is bound to one
// signature, so argument types outside it are a caller bug.
func (s *demoSpecialization) Call(args ...any) (any, error) {
	got, err := jit.SignatureOf(s.resolver, args)
	if err != nil {
		return nil, err
	}
	if !got.Equal(s.sig) {
		return nil, fmt.Errorf("specialization %s of %s expects %s, got %s",
			s.id, s.function, s.sig, got)
	}
	return s.impl(args...)
}
