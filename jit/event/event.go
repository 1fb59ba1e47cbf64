// Package event provides execution lifecycle notifications for dispatched
// calls. This package has no dependencies on jit/ — it stores pure event
// types plus the process-wide listener registry.
//
// Listener sets are keyed by event kind. Attachment is scoped: Install
// returns a release handle that detaches the listener, so observers can
// install themselves for the duration of a block and are guaranteed to be
// removed on exit.
package event

import "sync"

// Kind names an execution path whose lifecycle is observable.
type Kind string

const (
	// KindJIT marks execution of a compiled specialization.
	KindJIT Kind = "jit_execution"
	// KindInterpreter marks execution of the interpreted implementation.
	KindInterpreter Kind = "interpreter_execution"
)

// Status distinguishes the two notifications emitted per execution.
type Status int

const (
	// StatusStart fires immediately before the chosen path runs.
	StatusStart Status = iota
	// StatusEnd fires immediately after, even when the call fails.
	StatusEnd
)

// String returns the status name for logs and test diagnostics.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusEnd:
		return "end"
	}
	return "unknown"
}

// Event captures a single lifecycle notification.
type Event struct {
	Kind     Kind
	Status   Status
	Function string // name of the dispatched function
	Err      error  // non-nil only on end events for failed calls
}

// Listener receives lifecycle notifications for one event kind.
type Listener interface {
	OnStart(Event)
	OnEnd(Event)
}

// entry wraps a listener so two installs of the same listener value get
// distinct release handles.
type entry struct {
	listener Listener
}

var (
	mu        sync.RWMutex
	listeners = map[Kind][]*entry{}
)

// Install attaches a listener for the given kind and returns a release
// handle that detaches it. Release is idempotent.
func Install(kind Kind, l Listener) (release func()) {
	e := &entry{listener: l}
	mu.Lock()
	listeners[kind] = append(listeners[kind], e)
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			installed := listeners[kind]
			for i, cur := range installed {
				if cur == e {
					listeners[kind] = append(installed[:i:i], installed[i+1:]...)
					break
				}
			}
		})
	}
}

// With installs the listener for the duration of fn, detaching on return
// even when fn panics.
func With(kind Kind, l Listener, fn func()) {
	release := Install(kind, l)
	defer release()
	fn()
}

// Start notifies all listeners for kind that execution is beginning.
func Start(kind Kind, function string) {
	emit(Event{Kind: kind, Status: StatusStart, Function: function})
}

// End notifies all listeners for kind that execution finished. A non-nil
// err flags the error-flavored variant for failed calls.
func End(kind Kind, function string, err error) {
	emit(Event{Kind: kind, Status: StatusEnd, Function: function, Err: err})
}

func emit(e Event) {
	mu.RLock()
	installed := listeners[e.Kind]
	snapshot := make([]*entry, len(installed))
	copy(snapshot, installed)
	mu.RUnlock()

	// Listeners run outside the lock so they may install/release freely.
	for _, cur := range snapshot {
		switch e.Status {
		case StatusStart:
			cur.listener.OnStart(e)
		case StatusEnd:
			cur.listener.OnEnd(e)
		}
	}
}
