package dom

import (
	"time"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/errors"
)

// Event is delivered to handlers registered through on* properties.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string
	// Target is the node the event was fired on.
	Target *html.Node
	// Data carries arbitrary event payload.
	Data any
}

// Handler receives events fired on a node.
type Handler func(Event)

// listeners is a side table because html.Node cannot hold function values.
var listeners = map[*html.Node]map[string]Handler{}

// AddListener registers a handler for the named event on n, replacing any
// existing handler for that event.
func AddListener(n *html.Node, event string, h Handler) {
	if n == nil || h == nil {
		return
	}
	m := listeners[n]
	if m == nil {
		m = make(map[string]Handler)
		listeners[n] = m
	}
	m[event] = h
}

// RemoveListener removes the handler for the named event on n.
func RemoveListener(n *html.Node, event string) {
	m := listeners[n]
	if m == nil {
		return
	}
	delete(m, event)
	if len(m) == 0 {
		delete(listeners, n)
	}
}

// HasListener reports whether n has a handler for the named event.
func HasListener(n *html.Node, event string) bool {
	_, ok := listeners[n][event]
	return ok
}

// FireEvent invokes the handler registered for ev.Type on n, if any, and
// reports whether a handler ran. A panicking handler is recovered and
// reported through the error handler; it never propagates to the caller and
// still counts as having run.
func FireEvent(n *html.Node, ev Event) (handled bool) {
	h, ok := listeners[n][ev.Type]
	if !ok {
		return false
	}
	if ev.Target == nil {
		ev.Target = n
	}
	defer func() {
		if r := recover(); r != nil {
			errors.ReportHookError(&errors.HookError{
				Hook:       ev.Type,
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	handled = true
	h(ev)
	return handled
}

func clearListeners(n *html.Node) {
	delete(listeners, n)
}
