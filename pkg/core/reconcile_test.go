package core

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/dom"
)

func childElements(parent *html.Node) []*html.Node {
	var out []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func childNodes(parent *html.Node) []*html.Node {
	var out []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func textOf(n *html.Node) string {
	if n == nil || n.FirstChild == nil {
		return ""
	}
	return n.FirstChild.Data
}

func TestReconcile_KeyedReorder(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("ul", nil,
		H("li", Props{"key": "1"}, "a"),
		H("li", Props{"key": "2"}, "b"),
		H("li", Props{"key": "3"}, "c"),
	)
	materializeInto(container, old, nil, sched)

	ul := old.DOM()
	items := childElements(ul)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	nA, nB, nC := items[0], items[1], items[2]

	next := H("ul", nil,
		H("li", Props{"key": "2"}, "b"),
		H("li", Props{"key": "1"}, "a"),
		H("li", Props{"key": "4"}, "d"),
	)
	got := reconcile(container, old, next, nil, nil, sched)
	if got != ul {
		t.Fatal("expected the list element to keep its identity")
	}

	items = childElements(ul)
	if len(items) != 3 {
		t.Fatalf("expected 3 items after reorder, got %d", len(items))
	}
	if items[0] != nB {
		t.Error("expected the key=2 node to move to position 0, not be recreated")
	}
	if items[1] != nA {
		t.Error("expected the key=1 node to move to position 1, not be recreated")
	}
	if items[2] == nC {
		t.Error("expected the key=4 node to be freshly created")
	}
	if textOf(items[2]) != "d" {
		t.Errorf("expected new item text %q, got %q", "d", textOf(items[2]))
	}
	if nC.Parent != nil {
		t.Error("expected the key=3 node to be detached")
	}
}

func TestReconcile_UnkeyedShrinkAndGrow(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("p", nil, "x", "y", "z")
	materializeInto(container, old, nil, sched)
	p := old.DOM()
	texts := childNodes(p)
	if len(texts) != 3 {
		t.Fatalf("expected 3 text leaves, got %d", len(texts))
	}

	shrunk := H("p", nil, "x", "y")
	reconcile(container, old, shrunk, nil, nil, sched)
	after := childNodes(p)
	if len(after) != 2 {
		t.Fatalf("expected 2 text leaves after shrink, got %d", len(after))
	}
	if after[0] != texts[0] || after[1] != texts[1] {
		t.Error("expected the surviving leaves to keep their identity")
	}
	if texts[2].Parent != nil {
		t.Error("expected the trailing leaf to be detached")
	}

	grown := H("p", nil, "x", "y", "z")
	reconcile(container, shrunk, grown, nil, nil, sched)
	after = childNodes(p)
	if len(after) != 3 {
		t.Fatalf("expected 3 text leaves after grow, got %d", len(after))
	}
	if after[0] != texts[0] || after[1] != texts[1] {
		t.Error("expected the leading leaves to keep their identity")
	}
	if after[2].Data != "z" {
		t.Errorf("expected appended leaf %q, got %q", "z", after[2].Data)
	}
}

func TestReconcile_TextPatchInPlace(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("span", nil, "before")
	materializeInto(container, old, nil, sched)
	leaf := old.DOM().FirstChild

	next := H("span", nil, "after")
	reconcile(container, old, next, nil, nil, sched)

	if old.DOM().FirstChild != leaf {
		t.Fatal("expected the text leaf to keep its identity")
	}
	if leaf.Data != "after" {
		t.Errorf("expected updated content %q, got %q", "after", leaf.Data)
	}
}

func TestReconcile_TypeChangeReplaces(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("div", Props{"id": "box"})
	materializeInto(container, old, nil, sched)
	oldNode := old.DOM()

	next := H("span", Props{"id": "box"})
	got := reconcile(container, old, next, nil, nil, sched)

	if got == oldNode {
		t.Fatal("expected a new live node after a tag change")
	}
	if got.Data != "span" {
		t.Errorf("expected a span, got %q", got.Data)
	}
	if oldNode.Parent != nil {
		t.Error("expected the old node to be detached")
	}
	if container.FirstChild != got {
		t.Error("expected the replacement to take the old node's position")
	}
}

func TestReconcile_AttributePatchKeepsIdentity(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("input", Props{"type": "text", "disabled": true})
	materializeInto(container, old, nil, sched)
	n := old.DOM()

	next := H("input", Props{"type": "text", "placeholder": "name"})
	got := reconcile(container, old, next, nil, nil, sched)

	if got != n {
		t.Fatal("expected the input to keep its identity")
	}
	if _, ok := dom.GetAttr(n, "disabled"); ok {
		t.Error("expected the disabled attribute to be removed")
	}
	if v, _ := dom.GetAttr(n, "placeholder"); v != "name" {
		t.Errorf("expected placeholder %q, got %q", "name", v)
	}
}

func TestReconcile_RoundTripIsIdempotent(t *testing.T) {
	build := func() *VNode {
		return H("section", Props{"class": []string{"a", "b"}, "style": map[string]string{"color": "red", "margin": "0"}},
			H("h1", Props{"id": "title"}, "hello"),
			H(Fragment, nil,
				H("li", Props{"key": 1}, "one"),
				H("li", Props{"key": 2}, "two"),
			),
			"tail",
		)
	}

	sched := NewScheduler()
	container := dom.NewElement("div")
	old := build()
	materializeInto(container, old, nil, sched)

	var mutations []dom.Mutation
	stop := dom.RecordMutations(func(m dom.Mutation) {
		mutations = append(mutations, m)
	})
	defer stop()

	reconcile(container, old, build(), nil, nil, sched)

	if len(mutations) != 0 {
		for _, m := range mutations {
			t.Errorf("unexpected mutation %s on %q", m.Op, m.Node.Data)
		}
	}
}

func TestReconcile_DuplicateKeysLastWins(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("ul", nil, H("li", Props{"key": "x"}, "old"))
	materializeInto(container, old, nil, sched)
	ul := old.DOM()
	existing := childElements(ul)[0]

	next := H("ul", nil,
		H("li", Props{"key": "x"}, "first"),
		H("li", Props{"key": "x"}, "second"),
	)
	reconcile(container, old, next, nil, nil, sched)

	items := childElements(ul)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] == existing {
		t.Error("expected the earlier duplicate to be freshly created")
	}
	if items[1] != existing {
		t.Error("expected the later duplicate to claim the existing node")
	}
	if textOf(items[1]) != "second" {
		t.Errorf("expected the claimed node to show %q, got %q", "second", textOf(items[1]))
	}
}

func TestReconcile_FragmentChildrenReorder(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("div", nil, H(Fragment, nil,
		H("i", Props{"key": "a"}),
		H("i", Props{"key": "b"}),
	))
	materializeInto(container, old, nil, sched)
	host := old.DOM()
	items := childElements(host)
	nA, nB := items[0], items[1]

	next := H("div", nil, H(Fragment, nil,
		H("i", Props{"key": "b"}),
		H("i", Props{"key": "a"}),
	))
	reconcile(container, old, next, nil, nil, sched)

	items = childElements(host)
	if items[0] != nB || items[1] != nA {
		t.Error("expected fragment children to be moved, not recreated")
	}

	// The sentinel pair must still delimit the group.
	kids := childNodes(host)
	if kids[0].Type != html.CommentNode || kids[len(kids)-1].Type != html.CommentNode {
		t.Error("expected sentinel markers at the fragment boundaries")
	}
}

func TestReconcile_NestedFragments(t *testing.T) {
	pair := FunctionComponent(func(p Props, _ []*VNode) any {
		return H(Fragment, nil, p["x"], p["y"])
	})

	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("div", nil, H(Fragment, nil,
		H("b", nil, "lead"),
		H(pair, Props{"x": "1", "y": "2"}),
	))
	materializeInto(container, old, nil, sched)
	host := old.DOM()

	next := H("div", nil, H(Fragment, nil,
		H("b", nil, "lead"),
		H(pair, Props{"x": "3", "y": "4"}),
	))
	reconcile(container, old, next, nil, nil, sched)

	var texts []string
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			texts = append(texts, c.Data)
		}
	}
	want := []string{"3", "4"}
	if len(texts) != 2 || texts[0] != want[0] || texts[1] != want[1] {
		t.Errorf("expected nested fragment texts %v, got %v", want, texts)
	}

	markers := 0
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode {
			markers++
		}
	}
	if markers != 4 {
		t.Errorf("expected 4 sentinel markers for two nested fragments, got %d", markers)
	}
}

func TestReconcile_RawContentNotDiffed(t *testing.T) {
	sched := NewScheduler()
	container := dom.NewElement("div")

	old := H("div", Props{"unsafeHTML": "<b>raw</b>"})
	materializeInto(container, old, nil, sched)
	host := old.DOM()
	if host.FirstChild == nil || host.FirstChild.Data != "b" {
		t.Fatal("expected raw markup to be assigned on materialization")
	}
	rawNode := host.FirstChild

	// Identical raw content: untouched.
	same := H("div", Props{"unsafeHTML": "<b>raw</b>"})
	reconcile(container, old, same, nil, nil, sched)
	if host.FirstChild != rawNode {
		t.Error("expected unchanged raw content to keep its nodes")
	}

	// Switching back to description children rebuilds the content.
	next := H("div", nil, H("span", nil, "managed"))
	reconcile(container, same, next, nil, nil, sched)
	if host.FirstChild == nil || host.FirstChild.Data != "span" {
		t.Error("expected description children to replace raw content")
	}
}
