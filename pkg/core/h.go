package core

import (
	"fmt"
	"reflect"

	ferrors "github.com/go-fern/fern/pkg/errors"
)

// H builds a node description. kind is a tag name, [Fragment], a
// [FunctionComponent], or a [Factory]. props may be nil. Children are
// normalized: nested slices are flattened arbitrarily deep, nil and boolean
// entries are dropped, and remaining primitives become text leaves.
//
// A "key" entry in props is extracted into the description's Key and never
// reaches the materialized node's attributes. Functional components are
// invoked here, synchronously, and their result is returned in place;
// component factories are not invoked, they produce a descriptor that the
// builder and reconciler resolve to a long-lived instance.
func H(kind any, props Props, children ...any) *VNode {
	key, bag := splitKey(props)
	kids := normalizeChildren(children)

	switch k := kind.(type) {
	case string:
		return &VNode{Kind: KindTag, Tag: k, Props: bag, Children: kids, Key: key}
	case fragmentMarker:
		return &VNode{Kind: KindFragment, Props: bag, Children: kids, Key: key}
	case FunctionComponent:
		return callFunction(k, bag, kids)
	case func(Props, []*VNode) any:
		return callFunction(k, bag, kids)
	case Factory:
		return componentNode(k, bag, kids, key)
	case func() Component:
		return componentNode(k, bag, kids, key)
	default:
		ferrors.Report(&ferrors.UIError{
			Op:   "core.H",
			Kind: ferrors.KindDescription,
			Err:  fmt.Errorf("unsupported node kind %T", kind),
		})
		return Text("")
	}
}

// Text builds a text-leaf description directly.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

func componentNode(factory Factory, bag Props, kids []*VNode, key any) *VNode {
	return &VNode{
		Kind:      KindComponent,
		Props:     bag,
		Children:  kids,
		Key:       key,
		factory:   factory,
		factoryID: reflect.ValueOf(factory).Pointer(),
	}
}

// callFunction executes a functional component eagerly and normalizes
// whatever it returns: a description, a primitive, or a nested structure.
func callFunction(fn FunctionComponent, bag Props, kids []*VNode) *VNode {
	result := fn(bag, kids)
	switch r := result.(type) {
	case nil:
		return Text("")
	case *VNode:
		if r == nil {
			return Text("")
		}
		return r
	default:
		nodes := normalizeChildren([]any{result})
		switch len(nodes) {
		case 0:
			return Text("")
		case 1:
			return nodes[0]
		default:
			return &VNode{Kind: KindFragment, Props: Props{}, Children: nodes}
		}
	}
}

// splitKey copies the property bag without its control-only "key" entry.
// A nil bag normalizes to an empty one.
func splitKey(props Props) (key any, bag Props) {
	bag = Props{}
	for name, val := range props {
		if name == "key" {
			key = val
			continue
		}
		bag[name] = val
	}
	return key, bag
}

func normalizeChildren(children []any) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		out = appendChild(out, child)
	}
	return out
}

func appendChild(out []*VNode, child any) []*VNode {
	switch c := child.(type) {
	case nil, bool:
		return out
	case *VNode:
		if c == nil {
			return out
		}
		return append(out, c)
	case []*VNode:
		for _, v := range c {
			out = appendChild(out, v)
		}
		return out
	case []any:
		for _, v := range c {
			out = appendChild(out, v)
		}
		return out
	case string:
		return append(out, Text(c))
	default:
		// Remaining primitives (numbers and the like) render as text.
		return append(out, Text(fmt.Sprintf("%v", c)))
	}
}
