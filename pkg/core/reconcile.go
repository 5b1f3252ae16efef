package core

import (
	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/dom"
)

// reconcile patches the live tree so that the subtree described by old comes
// to match next. It returns the identity node for next, or nil when next is
// absent. ref is the insertion position hint for freshly appearing subtrees
// (insert before ref; nil appends). owner is the component instance driving
// the current pass; disposal never fires the owner's own WillUnmount, so a
// component whose root output changes kind is not unmounted by its own
// update.
//
// Decision order: both absent; removal; fresh insert; kind change
// (replacement); then in-place patching per kind.
func reconcile(parent *html.Node, old, next *VNode, ref *html.Node, owner Component, sched *Scheduler) *html.Node {
	switch {
	case old == nil && next == nil:
		return nil
	case next == nil:
		removeAndDispose(parent, old, owner)
		return nil
	case old == nil:
		return materializeInto(parent, next, ref, sched)
	case !sameKind(old, next):
		return replaceLive(parent, old, next, owner, sched)
	}

	switch next.Kind {
	case KindText:
		n := old.live
		if n == nil {
			return materializeInto(parent, next, ref, sched)
		}
		if old.Text != next.Text {
			dom.SetText(n, next.Text)
		}
		next.live = n
		return n

	case KindFragment:
		// The sentinel pair must still delimit the group inside this
		// parent; otherwise the group's extent is unknowable and the
		// whole fragment is replaced.
		if old.live == nil || old.end == nil || old.live.Parent != parent || old.end.Parent != parent {
			return replaceLive(parent, old, next, owner, sched)
		}
		next.live = old.live
		next.end = old.end
		diffChildren(parent, old.Children, next.Children, next.live, owner, sched)
		return next.live

	case KindComponent:
		inst := old.instance
		if inst == nil || inst.base().status == statusUnmounted {
			return replaceLive(parent, old, next, owner, sched)
		}
		next.instance = inst
		return runComponentUpdate(inst, next.Props, next.Children)

	case KindTag:
		n := old.live
		if n == nil {
			return materializeInto(parent, next, ref, sched)
		}
		dom.ApplyProps(n, old.Props, next.Props)
		patchTagChildren(n, old, next, owner, sched)
		next.live = n
		return n
	}
	return nil
}

// patchTagChildren reconciles an element's children, honoring the opaque
// raw-content property: raw markup is assigned by ApplyProps and never
// diffed against description children.
func patchTagChildren(n *html.Node, old, next *VNode, owner Component, sched *Scheduler) {
	oldRaw := old.Props.HasRawContent()
	newRaw := next.Props.HasRawContent()
	switch {
	case oldRaw && newRaw:
		// Content handled by ApplyProps.
	case newRaw:
		// Raw markup displaced the old children's live nodes; notify the
		// descriptions without touching the replaced content.
		for _, child := range old.Children {
			dispose(child, owner)
		}
	case oldRaw:
		dom.RemoveChildren(n)
		for _, child := range next.Children {
			materializeInto(n, child, nil, sched)
		}
	default:
		diffChildren(n, old.Children, next.Children, nil, owner, sched)
	}
}

// replaceLive realizes rule 4 of the decision table: materialize the new
// subtree in the old one's position, then dispose and detach the old one.
func replaceLive(parent *html.Node, old, next *VNode, owner Component, sched *Scheduler) *html.Node {
	first, _ := liveRange(old)
	n := materializeInto(parent, next, first, sched)
	removeAndDispose(parent, old, owner)
	return n
}

// removeAndDispose tears down a description's subtree: lifecycle and ref
// notifications first, then physical removal of its live range.
func removeAndDispose(parent *html.Node, old *VNode, owner Component) {
	first, last := liveRange(old)
	dispose(old, owner)
	removeLiveRange(parent, first, last)
}

func removeLiveRange(parent *html.Node, first, last *html.Node) {
	if parent == nil || first == nil || last == nil {
		return
	}
	for {
		next := first.NextSibling
		done := first == last
		dom.Detach(first)
		dom.Release(first)
		if done {
			return
		}
		if next == nil {
			return
		}
		first = next
	}
}

// diffChildren reconciles an ordered child list. Children carrying a key
// match the old child with the same key regardless of position, which lets
// reordering move live nodes instead of recreating them; unkeyed children
// match positionally against an unkeyed old child of the same kind. When two
// new siblings collide on a key, the later occurrence wins the pairing and
// the earlier one materializes fresh (last-write-wins; duplicate keys are a
// caller bug but are tolerated). Unconsumed old children are disposed.
//
// start is the fragment start marker when diffing between sentinels, nil
// when diffing a whole element's child list.
func diffChildren(parent *html.Node, old, next []*VNode, start *html.Node, owner Component, sched *Scheduler) {
	keyed := make(map[any]int)
	for i, o := range old {
		if o.Key != nil {
			keyed[o.Key] = i
		}
	}
	// Later duplicate occurrences win keyed pairings, so record the last
	// new index claiming each key.
	claim := make(map[any]int)
	for i, n := range next {
		if n.Key != nil {
			claim[n.Key] = i
		}
	}

	used := make([]bool, len(old))
	// prevLast tracks the last live node placed for the preceding new
	// child; the next child belongs immediately after it.
	prevLast := start

	for i, child := range next {
		var match *VNode
		if child.Key != nil {
			if j, ok := keyed[child.Key]; ok && !used[j] && claim[child.Key] == i {
				match = old[j]
				used[j] = true
			}
		} else if i < len(old) && !used[i] && old[i].Key == nil && sameKind(old[i], child) {
			match = old[i]
			used[i] = true
		}

		pos := positionAfter(parent, prevLast)
		identity := reconcile(parent, match, child, pos, owner, sched)
		if identity == nil {
			continue
		}
		first, last := liveRange(child)
		if first == nil || last == nil {
			continue
		}
		// The reconciled child may sit anywhere in the parent; move its
		// whole live range into expected sibling order.
		if desired := positionAfter(parent, prevLast); first != desired {
			dom.MoveRangeBefore(parent, first, last, desired)
		}
		prevLast = last
	}

	for j, o := range old {
		if !used[j] {
			removeAndDispose(parent, o, owner)
		}
	}
}

// positionAfter returns the node before which the next child belongs, given
// the last node of the previous child (or the start sentinel, or nil at the
// head of an element's child list).
func positionAfter(parent *html.Node, prevLast *html.Node) *html.Node {
	if prevLast != nil {
		return prevLast.NextSibling
	}
	return parent.FirstChild
}
