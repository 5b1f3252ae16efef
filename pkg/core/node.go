package core

import (
	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/dom"
)

// Props is the property bag of a node description.
type Props = dom.Props

// Kind discriminates the closed set of node description variants. The
// variant is resolved once, when the factory constructs the description;
// functional components are executed eagerly by the factory and therefore
// never appear as a kind of their own.
type Kind uint8

const (
	// KindText is a literal text leaf.
	KindText Kind = iota
	// KindTag is a primitive element with a tag name.
	KindTag
	// KindFragment is a container-less group of children, delimited in the
	// live tree by a pair of comment sentinel markers.
	KindFragment
	// KindComponent references a stateful component factory.
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTag:
		return "tag"
	case KindFragment:
		return "fragment"
	case KindComponent:
		return "component"
	default:
		return "invalid"
	}
}

// fragmentMarker is the type of the Fragment sentinel value.
type fragmentMarker struct{}

// Fragment is passed as the kind argument of H to group children without a
// wrapping element.
var Fragment fragmentMarker

// FunctionComponent is a pure description-producing function. The factory
// invokes it synchronously with the property bag and normalized children and
// uses its result in place; it has no identity, no state, and no lifecycle.
type FunctionComponent func(props Props, children []*VNode) any

// Factory constructs a stateful component instance. The factory value's
// identity is what the reconciler matches on: two descriptions referring to
// the same Factory update one long-lived instance.
type Factory func() Component

// VNode is an immutable-by-convention description of a desired presentation
// node. Descriptions form trees; the reconciler never mutates a description's
// declarative fields, it always diffs a freshly built tree against the
// previous one. The unexported fields are materialization bookkeeping that
// map a description to the live node it produced.
type VNode struct {
	Kind     Kind
	Tag      string // tag name, KindTag only
	Text     string // literal content, KindText only
	Props    Props
	Children []*VNode
	// Key is an optional stable identity token, unique among siblings,
	// used only for reconciliation matching and never rendered.
	Key any

	factory   Factory
	factoryID uintptr

	// live is the node realized for this description: the element or text
	// leaf, or the start sentinel for fragments. end is the fragment end
	// sentinel. instance is the component occurrence for KindComponent.
	live     *html.Node
	end      *html.Node
	instance Component
}

// DOM returns the live node realized for this description: the element or
// text leaf itself, a fragment's start marker, or a component's root node.
// It returns nil for descriptions that have not been materialized.
func (v *VNode) DOM() *html.Node {
	if v == nil {
		return nil
	}
	if v.Kind == KindComponent {
		if v.instance == nil {
			return nil
		}
		return v.instance.base().root
	}
	return v.live
}

// Instance returns the stateful component occurrence realized for a
// KindComponent description, or nil.
func (v *VNode) Instance() Component {
	if v == nil {
		return nil
	}
	return v.instance
}

// sameKind reports whether two descriptions are reconcilable in place:
// identical variant, identical tag for primitives, identical factory for
// components. Anything else is a full replacement.
func sameKind(a, b *VNode) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindTag:
		return a.Tag == b.Tag
	case KindComponent:
		return a.factoryID == b.factoryID
	default:
		return true
	}
}

// liveRange returns the first and last live nodes claimed by a description:
// the single node for text and tags, the sentinel pair for fragments, and
// the rendered output's range for components. Both are nil when the
// description was never materialized.
func liveRange(v *VNode) (first, last *html.Node) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case KindFragment:
		return v.live, v.end
	case KindComponent:
		if v.instance == nil {
			return nil, nil
		}
		return liveRange(v.instance.base().rendered)
	default:
		return v.live, v.live
	}
}
