// Package notify carries user-visible notifications from the browser core to
// whatever surface is showing it.
package notify

import (
	"fmt"
	"log"
	"sync"
)

// Prefix is prepended to every notification.
const Prefix = "IB"

// Level is a notification severity.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notification is one message for the user.
type Notification struct {
	Level   Level
	Message string
}

func (n Notification) String() string {
	return fmt.Sprintf("%s | %s", Prefix, n.Message)
}

// Notifier receives notifications.
type Notifier interface {
	Notify(Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

// Notify calls f.
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Logger writes notifications through a standard logger.
func Logger(l *log.Logger) Notifier {
	return Func(func(n Notification) {
		l.Printf("%s: %s", n.Level, n)
	})
}

// Recorder keeps notifications in memory until drained.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of everything recorded so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}
