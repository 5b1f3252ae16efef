package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/go-fern/fern/pkg/errors"
)

type hookRecorder struct {
	hooks []*ferrors.HookError
}

func (r *hookRecorder) HandleError(*ferrors.UIError) {}
func (r *hookRecorder) HandleHookError(err *ferrors.HookError) { r.hooks = append(r.hooks, err) }

func TestFireEvent_DeliversToTarget(t *testing.T) {
	n := NewElement("button")
	var got Event
	AddListener(n, "click", func(ev Event) { got = ev })

	handled := FireEvent(n, Event{Type: "click", Data: 7})
	require.True(t, handled)
	assert.Equal(t, "click", got.Type)
	assert.Same(t, n, got.Target)
	assert.Equal(t, 7, got.Data)
}

func TestFireEvent_NoHandler(t *testing.T) {
	n := NewElement("button")
	assert.False(t, FireEvent(n, Event{Type: "click"}))
}

func TestFireEvent_PanicIsContained(t *testing.T) {
	rec := &hookRecorder{}
	ferrors.SetHandler(rec)
	defer ferrors.SetHandler(nil)

	n := NewElement("button")
	AddListener(n, "click", func(Event) { panic("handler boom") })

	handled := false
	assert.NotPanics(t, func() { handled = FireEvent(n, Event{Type: "click"}) })
	assert.True(t, handled, "a handler that panicked still ran")
	require.Len(t, rec.hooks, 1)
	assert.Equal(t, "click", rec.hooks[0].Hook)
	assert.Equal(t, "handler boom", rec.hooks[0].Recovered)
}

func TestAddListener_ReplacesPerEvent(t *testing.T) {
	n := NewElement("input")
	first, second := 0, 0
	AddListener(n, "input", func(Event) { first++ })
	AddListener(n, "input", func(Event) { second++ })

	FireEvent(n, Event{Type: "input"})
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestRelease_ClearsSubtreeListeners(t *testing.T) {
	root := NewElement("div")
	leaf := NewElement("a")
	InsertBefore(root, leaf, nil)
	AddListener(root, "click", func(Event) {})
	AddListener(leaf, "click", func(Event) {})

	Release(root)
	assert.False(t, HasListener(root, "click"))
	assert.False(t, HasListener(leaf, "click"))
}
