package core

import (
	"github.com/go-fern/fern/pkg/dom"
)

// dispose recursively tears down a removed description subtree before its
// live nodes are physically discarded: components receive WillUnmount
// exactly once, ref bindings are severed for every disposed node, and
// children are visited so nested components are notified. owner is the
// instance driving the current reconciliation pass; its own hook is skipped
// (a component must not unmount itself mid-update) but its subtree is still
// walked.
func dispose(v *VNode, owner Component) {
	if v == nil {
		return
	}

	if v.Kind == KindComponent {
		inst := v.instance
		if inst == nil {
			return
		}
		b := inst.base()
		wasMounted := b.status == statusMounted
		// Flipping the status first suppresses a still-pending deferred
		// Mounted notification and silences later SetState calls.
		if inst != owner {
			b.status = statusUnmounted
			if wasMounted {
				if w, ok := inst.(interface{ WillUnmount() }); ok {
					invokeHook(inst, "WillUnmount", w.WillUnmount)
				}
			}
		}
		dispose(b.rendered, owner)
		if inst != owner {
			b.root = nil
		}
		return
	}

	if ref, ok := v.Props[dom.PropRef]; ok {
		dom.SeverRef(ref)
	}
	for _, child := range v.Children {
		dispose(child, owner)
	}
}
