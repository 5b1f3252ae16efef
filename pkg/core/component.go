package core

import (
	"errors"
	"reflect"
	"time"

	"golang.org/x/net/html"

	ferrors "github.com/go-fern/fern/pkg/errors"
)

// ErrRenderNotImplemented is the panic value raised when a component fails
// to supply its own Render. A component without a render operation cannot
// participate in materialization, so this configuration error propagates
// loudly instead of being contained.
var ErrRenderNotImplemented = errors.New("fern: component does not implement Render")

// Component is a long-lived stateful occurrence in the tree. Implementations
// embed [ComponentBase] and provide Render; the optional lifecycle hooks
// Mounted, WillUnmount, and Updated are no-ops unless overridden.
type Component interface {
	// Render produces the component's child description.
	Render() *VNode

	base() *ComponentBase
}

type lifecycleStatus uint8

const (
	statusNew lifecycleStatus = iota
	statusMounted
	statusUnmounted
)

// ComponentBase provides identity, local state, the state-merge operation,
// and the update operation for stateful components. Embed it in your
// component struct:
//
//	type clock struct {
//	    core.ComponentBase
//	}
//
// The zero value is ready to use; the builder wires the instance up when the
// component first materializes.
type ComponentBase struct {
	self     Component
	sched    *Scheduler
	props    Props
	children []*VNode
	state    Props

	// prevState snapshots the state before the first merge of an update
	// batch, so the Updated notification reports the pre-batch state even
	// when several SetState calls coalesce into one pass.
	prevState    Props
	hasPrevState bool

	status   lifecycleStatus
	rendered *VNode     // previous rendered description, diffed on update
	root     *html.Node // current root live node (fragment start marker when applicable)
}

func (b *ComponentBase) base() *ComponentBase { return b }

// Render panics with [ErrRenderNotImplemented]. Components must override it.
func (b *ComponentBase) Render() *VNode {
	panic(ErrRenderNotImplemented)
}

// Mounted is invoked once, after the first materialized tree has been
// committed; the live node exists and is positioned when it runs. No-op by
// default.
func (b *ComponentBase) Mounted() {}

// WillUnmount is invoked exactly once, just before the component's subtree
// is discarded. No-op by default.
func (b *ComponentBase) WillUnmount() {}

// Updated is invoked after each reconciliation pass triggered by new props
// or merged state, with the properties and state from before the pass.
// No-op by default.
func (b *ComponentBase) Updated(prevProps, prevState Props) {}

// Props returns the external input assigned by the parent's last render.
func (b *ComponentBase) Props() Props { return b.props }

// Children returns the child descriptions passed by the parent.
func (b *ComponentBase) Children() []*VNode { return b.children }

// State returns the component's local state. Mutate it only through
// SetState or SetStateFunc.
func (b *ComponentBase) State() Props { return b.state }

// DOM returns the component's current root live node, nil before first
// materialization and after unmount.
func (b *ComponentBase) DOM() *html.Node { return b.root }

// InitState seeds the local state. Call it from the component factory,
// before the instance is materialized.
func (b *ComponentBase) InitState(state Props) {
	b.state = cloneProps(state)
}

// SetState merges patch into the local state and schedules a coalesced
// update. After the component has unmounted it is a silent no-op.
func (b *ComponentBase) SetState(patch Props) {
	if b.status == statusUnmounted {
		return
	}
	b.capturePrevState()
	b.mergeState(patch)
	b.scheduleUpdate()
}

// SetStateFunc calls fn with the current state and props and merges its
// return value, then schedules a coalesced update.
func (b *ComponentBase) SetStateFunc(fn func(state, props Props) Props) {
	if b.status == statusUnmounted || fn == nil {
		return
	}
	b.capturePrevState()
	b.mergeState(fn(b.state, b.props))
	b.scheduleUpdate()
}

// Update re-invokes Render immediately and reconciles the result against the
// previously rendered description, run-to-completion. It is a no-op when the
// instance is unmounted or its live node has no parent.
func (b *ComponentBase) Update() {
	runComponentUpdate(b.self, b.props, b.children)
}

func (b *ComponentBase) capturePrevState() {
	if b.hasPrevState {
		return
	}
	b.prevState = cloneProps(b.state)
	b.hasPrevState = true
}

// takePrevState returns the snapshot captured at the start of the current
// batch, or a copy of the current state when nothing was merged.
func (b *ComponentBase) takePrevState() Props {
	if b.hasPrevState {
		prev := b.prevState
		b.prevState = nil
		b.hasPrevState = false
		return prev
	}
	return cloneProps(b.state)
}

func (b *ComponentBase) mergeState(patch Props) {
	if len(patch) == 0 {
		return
	}
	if b.state == nil {
		b.state = Props{}
	}
	for k, v := range patch {
		b.state[k] = v
	}
}

func (b *ComponentBase) scheduleUpdate() {
	if b.sched == nil || b.self == nil {
		return
	}
	b.sched.ScheduleUpdate(b.self)
}

// notifyMounted fires the deferred Mounted hook. Disposal before the
// deferred task runs flips the status, which suppresses the notification.
func (b *ComponentBase) notifyMounted() {
	if b.status != statusNew {
		return
	}
	b.status = statusMounted
	if m, ok := b.self.(interface{ Mounted() }); ok {
		invokeHook(b.self, "Mounted", m.Mounted)
	}
}

func cloneProps(p Props) Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// runComponentUpdate is the shared update path for both parent-driven
// reconciliation (new props) and self-driven updates (merged state): keep
// the instance, swap props, re-render, reconcile the previous rendered
// description against the new one with this instance as the reconciliation
// owner, and fire Updated with the pre-pass props and state.
func runComponentUpdate(inst Component, newProps Props, newChildren []*VNode) *html.Node {
	b := inst.base()
	if b.status == statusUnmounted {
		return b.root
	}
	if b.root == nil || b.root.Parent == nil {
		// Already detached; nothing to patch.
		return b.root
	}
	prevProps := b.props
	prevState := b.takePrevState()
	b.props = newProps
	b.children = newChildren

	next := renderComponent(inst)
	root := reconcile(b.root.Parent, b.rendered, next, nil, inst, b.sched)
	b.rendered = next
	b.root = root

	if u, ok := inst.(interface{ Updated(Props, Props) }); ok {
		invokeHook(inst, "Updated", func() {
			u.Updated(prevProps, prevState)
		})
	}
	return root
}

// renderComponent invokes Render with panic containment: a failing render is
// reported through the error handler and degrades to an empty text leaf so
// one bad component cannot corrupt sibling updates. The missing-Render
// configuration error is the exception; it propagates.
func renderComponent(inst Component) *VNode {
	var out *VNode
	var hookErr *ferrors.HookError

	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, ErrRenderNotImplemented) {
					panic(r)
				}
				hookErr = &ferrors.HookError{
					Component:  componentName(inst),
					Hook:       "Render",
					Recovered:  r,
					StackTrace: ferrors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		out = inst.Render()
	}()

	if hookErr != nil {
		ferrors.ReportHookError(hookErr)
		return Text("")
	}
	if out == nil {
		return Text("")
	}
	return out
}

// invokeHook runs a lifecycle hook with panic containment.
func invokeHook(inst Component, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ferrors.ReportHookError(&ferrors.HookError{
				Component:  componentName(inst),
				Hook:       hook,
				Recovered:  r,
				StackTrace: ferrors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	fn()
}

func componentName(inst Component) string {
	if inst == nil {
		return ""
	}
	return reflect.TypeOf(inst).String()
}
