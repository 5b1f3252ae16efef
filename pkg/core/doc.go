// Package core implements fern's virtual-tree reconciliation engine.
//
// A [VNode] is an immutable description of a desired presentation-tree node,
// produced by the hyperscript-style factory [H]. [Render] materializes a
// description tree into live nodes inside a container; component updates flow
// through the reconciler, which patches the live tree in place, moving keyed
// children instead of recreating them and preserving the identity (and
// therefore external bindings such as refs and subscriptions) of unchanged
// nodes.
//
// # Components
//
// Stateful components embed [ComponentBase] and implement Render:
//
//	type counter struct {
//	    core.ComponentBase
//	}
//
//	func newCounter() core.Component { return &counter{} }
//
//	func (c *counter) Render() *core.VNode {
//	    n, _ := c.State()["count"].(int)
//	    return core.H("button", core.Props{
//	        "onClick": func(dom.Event) {
//	            c.SetState(core.Props{"count": n + 1})
//	        },
//	    }, n)
//	}
//
// SetState merges into local state and schedules a coalesced update through
// the [Scheduler]; several SetState calls between flushes produce a single
// reconciliation pass whose Updated notification reports the state as it was
// before the first call of the batch.
//
// # Execution model
//
// Everything here is single-threaded and run-to-completion: a flush owns the
// live tree exclusively from entry to return. Calling SetState from within a
// Render body is disallowed. Mounted notifications are the one deferred
// piece: they are posted to the scheduler's task queue and run after the
// mutation phase of the flush that created the component, never inline.
package core
