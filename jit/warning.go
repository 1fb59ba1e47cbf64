package jit

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// FallbackWarning describes a call that fell back to the interpreted
// path while fallback warnings were enabled. It is informational, never
// an error: the call still executes.
type FallbackWarning struct {
	Function  string
	Signature Signature
}

// Message renders the warning text, naming the function and the derived
// argument-type signature.
func (w FallbackWarning) Message() string {
	return fmt.Sprintf("%s(%s) not using JIT", w.Function, w.Signature.typeList())
}

// WarningHandler receives fallback warnings. Handlers must be non-nil
// and should not block.
type WarningHandler func(FallbackWarning)

var (
	warnMu      sync.RWMutex
	warnHandler WarningHandler = func(w FallbackWarning) {
		logrus.Warn(w.Message())
	}
)

// SetWarningHandler replaces the process-wide fallback warning handler
// and returns the previous one, so tests and embedders can restore it.
func SetWarningHandler(h WarningHandler) WarningHandler {
	warnMu.Lock()
	defer warnMu.Unlock()
	prev := warnHandler
	if h == nil {
		h = func(FallbackWarning) {}
	}
	warnHandler = h
	return prev
}

func warn(w FallbackWarning) {
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	h(w)
}
