package uitest

import (
	"golang.org/x/net/html"
)

// AllByTag returns every element under the container with the given tag
// name, depth-first pre-order.
func (tt *Tester) AllByTag(tag string) []*html.Node {
	var out []*html.Node
	walk(tt.container, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
	})
	return out
}

// FirstByTag returns the first element with the given tag name, or nil.
func (tt *Tester) FirstByTag(tag string) *html.Node {
	nodes := tt.AllByTag(tag)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ByText returns the first text leaf whose content equals text, or nil.
func (tt *Tester) ByText(text string) *html.Node {
	var found *html.Node
	walk(tt.container, func(n *html.Node) {
		if found == nil && n.Type == html.TextNode && n.Data == text {
			found = n
		}
	})
	return found
}

// Texts returns the content of every text leaf in document order, skipping
// empty leaves.
func (tt *Tester) Texts() []string {
	var out []string
	walk(tt.container, func(n *html.Node) {
		if n.Type == html.TextNode && n.Data != "" {
			out = append(out, n.Data)
		}
	})
	return out
}

func walk(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
		walk(c, visit)
	}
}
