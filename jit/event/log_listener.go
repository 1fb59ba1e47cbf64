package event

import "github.com/sirupsen/logrus"

// LogListener mirrors lifecycle notifications to logrus at debug level.
// Install one per kind to trace dispatch decisions from the CLI.
type LogListener struct{}

// OnStart implements Listener.
func (LogListener) OnStart(e Event) {
	logrus.Debugf(">> %s: %s", e.Kind, e.Function)
}

// OnEnd implements Listener.
func (LogListener) OnEnd(e Event) {
	if e.Err != nil {
		logrus.Debugf("<< %s: %s failed: %v", e.Kind, e.Function, e.Err)
		return
	}
	logrus.Debugf("<< %s: %s", e.Kind, e.Function)
}
