package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node with the given tag name.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text leaf.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// NewComment creates a detached comment node. Fern uses comments as
// fragment boundary markers.
func NewComment(data string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: data}
}

// IsElement reports whether n is a non-nil element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// InsertBefore detaches n from its current parent, if any, and inserts it
// into parent before ref. A nil ref appends.
func InsertBefore(parent, n, ref *html.Node) {
	if parent == nil || n == nil || n == ref {
		return
	}
	if ref != nil && ref.Parent != parent {
		ref = nil
	}
	Detach(n)
	parent.InsertBefore(n, ref)
	record(Mutation{Op: OpInsert, Node: n})
}

// Detach removes n from its parent. Side tables are left intact so the node
// can be re-inserted elsewhere; use Release when discarding a node for good.
func Detach(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
	record(Mutation{Op: OpRemove, Node: n})
}

// RemoveChildren detaches and releases every child of parent.
func RemoveChildren(parent *html.Node) {
	if parent == nil {
		return
	}
	for parent.FirstChild != nil {
		child := parent.FirstChild
		Detach(child)
		Release(child)
	}
}

// MoveRangeBefore moves the contiguous sibling range [first, last] so that
// it sits immediately before ref (nil ref appends). Listeners and other
// side-table state travel with the nodes.
func MoveRangeBefore(parent, first, last, ref *html.Node) {
	if parent == nil || first == nil || last == nil {
		return
	}
	for {
		next := first.NextSibling
		done := first == last
		InsertBefore(parent, first, ref)
		if done {
			return
		}
		first = next
	}
}

// SetText replaces the literal content of a text leaf.
func SetText(n *html.Node, text string) {
	if n == nil || n.Type != html.TextNode || n.Data == text {
		return
	}
	n.Data = text
	record(Mutation{Op: OpSetText, Node: n})
}

// GetAttr returns the value of the named attribute and whether it is set.
func GetAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value. It is a
// no-op when the attribute already has the given value.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			if a.Val == value {
				return
			}
			n.Attr[i].Val = value
			record(Mutation{Op: OpSetAttr, Node: n, Name: name})
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	record(Mutation{Op: OpSetAttr, Node: n, Name: name})
}

// RemoveAttr removes the named attribute if present.
func RemoveAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			record(Mutation{Op: OpRemoveAttr, Node: n, Name: name})
			return
		}
	}
}

// SetUnsafeHTML replaces n's entire content with markup parsed verbatim.
// The resulting children are opaque to reconciliation. The caller is
// responsible for the safety of the markup.
func SetUnsafeHTML(n *html.Node, markup string) error {
	if !IsElement(n) {
		return fmt.Errorf("dom: raw content target is not an element")
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, child := range nodes {
		n.AppendChild(child)
	}
	record(Mutation{Op: OpRawContent, Node: n})
	return nil
}

// Release drops all side-table state held for n and its descendants.
// Call it after permanently removing a subtree from the live tree.
func Release(n *html.Node) {
	if n == nil {
		return
	}
	clearListeners(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Release(c)
	}
}
