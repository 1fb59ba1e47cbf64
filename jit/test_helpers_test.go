package jit

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/smartjit/smartjit/jit/event"
)

// stubCompiler is a test double for the external compiler: reflect-based
// type inference, compile counting, and optional per-signature failures.
type stubCompiler struct {
	mu       sync.Mutex
	compiles int
	compiled []Signature
	failFor  map[string]error
}

func (c *stubCompiler) TypeOf(v any) (Type, error) {
	if v == nil {
		return "", fmt.Errorf("cannot infer type of nil")
	}
	return Type(reflect.TypeOf(v).String()), nil
}

func (c *stubCompiler) Compile(function string, impl Interpreted, sig Signature, opts map[string]string) (Specialization, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.failFor[sig.Key()]; ok {
		return nil, err
	}
	c.compiles++
	c.compiled = append(c.compiled, sig)
	return &stubSpecialization{
		id:   fmt.Sprintf("%s-%d", function, c.compiles),
		sig:  sig,
		impl: impl,
	}, nil
}

func (c *stubCompiler) compileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

// stubSpecialization runs the interpreted implementation and counts its
// own invocations, so tests can tell the compiled path was taken.
type stubSpecialization struct {
	id    string
	sig   Signature
	impl  Interpreted
	mu    sync.Mutex
	calls int
}

func (s *stubSpecialization) ID() string           { return s.id }
func (s *stubSpecialization) Signature() Signature { return s.sig }

func (s *stubSpecialization) Call(args ...any) (any, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.impl(args...)
}

func (s *stubSpecialization) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// captureListener records every notification it receives.
type captureListener struct {
	mu     sync.Mutex
	starts []event.Event
	ends   []event.Event
}

func (l *captureListener) OnStart(e event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.starts = append(l.starts, e)
}

func (l *captureListener) OnEnd(e event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ends = append(l.ends, e)
}

func (l *captureListener) counts() (starts, ends int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.starts), len(l.ends)
}

// listenBoth installs capture listeners for both event kinds for the
// duration of the test.
func listenBoth(t *testing.T) (jit, interp *captureListener) {
	t.Helper()
	jit = &captureListener{}
	interp = &captureListener{}
	releaseJIT := event.Install(event.KindJIT, jit)
	releaseInterp := event.Install(event.KindInterpreter, interp)
	t.Cleanup(releaseJIT)
	t.Cleanup(releaseInterp)
	return jit, interp
}

// captureWarnings swaps in a recording warning handler for the duration
// of the test and returns the recorded warnings slice pointer.
func captureWarnings(t *testing.T) *[]FallbackWarning {
	t.Helper()
	var mu sync.Mutex
	warnings := &[]FallbackWarning{}
	prev := SetWarningHandler(func(w FallbackWarning) {
		mu.Lock()
		defer mu.Unlock()
		*warnings = append(*warnings, w)
	})
	t.Cleanup(func() { SetWarningHandler(prev) })
	return warnings
}

// sumFunc sums a []float64 first argument.
func sumFunc(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sum expects 1 argument, got %d", len(args))
	}
	values, ok := args[0].([]float64)
	if !ok {
		return nil, fmt.Errorf("sum expects []float64, got %T", args[0])
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total, nil
}

// addFunc adds two arguments of the same type (int, float64, or string).
func addFunc(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("add expects 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case int:
		b, ok := args[1].(int)
		if !ok {
			return nil, fmt.Errorf("add: mixed types %T and %T", args[0], args[1])
		}
		return a + b, nil
	case float64:
		b, ok := args[1].(float64)
		if !ok {
			return nil, fmt.Errorf("add: mixed types %T and %T", args[0], args[1])
		}
		return a + b, nil
	case string:
		b, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("add: mixed types %T and %T", args[0], args[1])
		}
		return a + b, nil
	}
	return nil, fmt.Errorf("add: unsupported type %T", args[0])
}
