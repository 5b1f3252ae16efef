// Package uitest provides an isolated harness for testing fern trees: it
// renders descriptions into an in-memory container, drives the scheduler,
// fires events, and locates or serializes live nodes.
package uitest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/core"
	"github.com/go-fern/fern/pkg/dom"
)

// Tester owns a detached container element and a private scheduler, so
// tests never share state through the default scheduler.
type Tester struct {
	t         *testing.T
	container *html.Node
	sched     *core.Scheduler
}

// New creates a tester bound to t.
func New(t *testing.T) *Tester {
	t.Helper()
	return &Tester{
		t:         t,
		container: dom.NewElement("div"),
		sched:     core.NewScheduler(),
	}
}

// Container returns the render target element.
func (tt *Tester) Container() *html.Node {
	return tt.container
}

// Scheduler returns the tester's private scheduler.
func (tt *Tester) Scheduler() *core.Scheduler {
	return tt.sched
}

// Render materializes v into the container, failing the test on a
// configuration error. Deferred Mounted notifications stay queued until
// Flush (or Pump) runs.
func (tt *Tester) Render(v *core.VNode) {
	tt.t.Helper()
	if err := core.RenderWith(v, tt.container, tt.sched); err != nil {
		tt.t.Fatalf("Render: %v", err)
	}
}

// Flush drains the scheduler: coalesced component updates first, then
// deferred notifications.
func (tt *Tester) Flush() {
	tt.sched.Flush()
}

// Pump renders v and immediately flushes.
func (tt *Tester) Pump(v *core.VNode) {
	tt.t.Helper()
	tt.Render(v)
	tt.Flush()
}

// Fire dispatches an event to the first element matching tag, then flushes.
func (tt *Tester) Fire(tag, event string, data any) {
	tt.t.Helper()
	n := tt.FirstByTag(tag)
	if n == nil {
		tt.t.Fatalf("Fire: no <%s> element", tag)
	}
	dom.FireEvent(n, dom.Event{Type: event, Data: data})
	tt.Flush()
}

// HTML serializes the container's current content.
func (tt *Tester) HTML() string {
	var sb strings.Builder
	for c := tt.container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			tt.t.Fatalf("HTML: %v", err)
		}
	}
	return sb.String()
}
