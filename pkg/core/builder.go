package core

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/dom"
	ferrors "github.com/go-fern/fern/pkg/errors"
)

// Sentinel comment data delimiting a fragment's extent in its parent.
const (
	fragmentStartMarker = "fern:fragment"
	fragmentEndMarker   = "/fern:fragment"
)

// materializeInto walks a description and produces its live nodes, inserting
// them into parent before ref (nil ref appends). It returns the identity
// node of the produced subtree: the element or text leaf, a fragment's start
// marker, or a component's root node. The description's bookkeeping fields
// are filled so the next reconciliation can map it back to its live nodes.
func materializeInto(parent *html.Node, v *VNode, ref *html.Node, sched *Scheduler) *html.Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindText:
		n := dom.NewText(v.Text)
		dom.InsertBefore(parent, n, ref)
		v.live = n
		return n

	case KindTag:
		n := dom.NewElement(v.Tag)
		dom.ApplyProps(n, nil, v.Props)
		if !v.Props.HasRawContent() {
			for _, child := range v.Children {
				materializeInto(n, child, nil, sched)
			}
		}
		dom.InsertBefore(parent, n, ref)
		v.live = n
		return n

	case KindFragment:
		start := dom.NewComment(fragmentStartMarker)
		end := dom.NewComment(fragmentEndMarker)
		dom.InsertBefore(parent, start, ref)
		for _, child := range v.Children {
			materializeInto(parent, child, ref, sched)
		}
		dom.InsertBefore(parent, end, ref)
		v.live = start
		v.end = end
		return start

	case KindComponent:
		return materializeComponent(parent, v, ref, sched)

	default:
		ferrors.Report(&ferrors.UIError{
			Op:   "core.materialize",
			Kind: ferrors.KindDescription,
			Err:  fmt.Errorf("unrecognized description kind %d", v.Kind),
		})
		n := dom.NewText("")
		dom.InsertBefore(parent, n, ref)
		v.live = n
		return n
	}
}

// materializeComponent creates the long-lived instance for a component
// description, renders it, materializes the result, and defers the Mounted
// notification to after the commit.
func materializeComponent(parent *html.Node, v *VNode, ref *html.Node, sched *Scheduler) *html.Node {
	if v.factory == nil {
		ferrors.Report(&ferrors.UIError{
			Op:   "core.materialize",
			Kind: ferrors.KindDescription,
			Err:  fmt.Errorf("component description without factory"),
		})
		n := dom.NewText("")
		dom.InsertBefore(parent, n, ref)
		v.live = n
		return n
	}

	inst := v.factory()
	b := inst.base()
	b.self = inst
	b.sched = sched
	b.props = v.Props
	b.children = v.Children
	b.status = statusNew

	rendered := renderComponent(inst)
	root := materializeInto(parent, rendered, ref, sched)
	b.rendered = rendered
	b.root = root
	v.instance = inst

	if sched != nil {
		sched.Post(b.notifyMounted)
	}
	return root
}
