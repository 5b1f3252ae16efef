package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func attr(t *testing.T, n *html.Node, name string) string {
	t.Helper()
	v, _ := GetAttr(n, name)
	return v
}

func TestApplyProps_PlainAttributes(t *testing.T) {
	n := NewElement("input")
	ApplyProps(n, nil, Props{"type": "text", "tabindex": 3, "disabled": true})

	assert.Equal(t, "text", attr(t, n, "type"))
	assert.Equal(t, "3", attr(t, n, "tabindex"))
	_, present := GetAttr(n, "disabled")
	assert.True(t, present, "true sets a presence-only attribute")
	assert.Equal(t, "", attr(t, n, "disabled"))
}

func TestApplyProps_FalsyValuesRemove(t *testing.T) {
	n := NewElement("input")
	old := Props{"disabled": true, "placeholder": "name", "title": "x"}
	ApplyProps(n, nil, old)

	ApplyProps(n, old, Props{"disabled": false, "placeholder": "", "title": nil})
	for _, name := range []string{"disabled", "placeholder", "title"} {
		_, present := GetAttr(n, name)
		assert.False(t, present, "attribute %q should be removed", name)
	}
}

func TestApplyProps_DroppedPropsRemoved(t *testing.T) {
	n := NewElement("a")
	old := Props{"href": "/x", "target": "_blank"}
	ApplyProps(n, nil, old)

	ApplyProps(n, old, Props{"href": "/x"})
	assert.Equal(t, "/x", attr(t, n, "href"))
	_, present := GetAttr(n, "target")
	assert.False(t, present)
}

func TestApplyProps_EqualValuesProduceNoMutations(t *testing.T) {
	n := NewElement("div")
	handler := func(Event) {}
	old := Props{"id": "a", "class": []string{"x", "y"}, "onclick": handler}
	ApplyProps(n, nil, old)

	var mutations []Mutation
	stop := RecordMutations(func(m Mutation) { mutations = append(mutations, m) })
	defer stop()

	ApplyProps(n, old, Props{"id": "a", "class": []string{"x", "y"}, "onclick": handler})
	assert.Empty(t, mutations)
}

func TestApplyProps_ClassForms(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want string
	}{
		{"string", "a b", "a b"},
		{"slice", []string{"nav", "open"}, "nav open"},
		{"map keeps enabled sorted", map[string]bool{"b": true, "a": true, "off": false}, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewElement("div")
			ApplyProps(n, nil, Props{"class": tt.val})
			assert.Equal(t, tt.want, attr(t, n, "class"))
		})
	}
}

func TestApplyProps_StyleMapSorted(t *testing.T) {
	n := NewElement("div")
	ApplyProps(n, nil, Props{"style": map[string]string{"width": "10px", "color": "red"}})
	assert.Equal(t, "color: red; width: 10px", attr(t, n, "style"))
}

func TestApplyProps_EventHandlers(t *testing.T) {
	n := NewElement("button")
	clicks := 0
	ApplyProps(n, nil, Props{"onClick": func() { clicks++ }})

	require.True(t, HasListener(n, "click"))
	assert.True(t, FireEvent(n, Event{Type: "click"}))
	assert.Equal(t, 1, clicks)

	// Replacing the value rebinds; removing the prop unbinds.
	old := Props{"onClick": func() { clicks++ }}
	ApplyProps(n, old, Props{})
	assert.False(t, HasListener(n, "click"))
	assert.False(t, FireEvent(n, Event{Type: "click"}))
}

func TestApplyProps_HandlerRebindsAcrossPasses(t *testing.T) {
	n := NewElement("button")
	var got int
	// Both bags build their closure at the same source line, so the two
	// handlers share a code pointer; only the captured value differs.
	makeProps := func(v int) Props {
		return Props{"onClick": func(Event) { got = v }}
	}

	old := makeProps(1)
	ApplyProps(n, nil, old)
	next := makeProps(2)
	ApplyProps(n, old, next)

	FireEvent(n, Event{Type: "click"})
	assert.Equal(t, 2, got, "the latest render's handler must be bound, not the first's")
}

func TestApplyProps_OnPrefixedNonHandlerIsAttribute(t *testing.T) {
	n := NewElement("div")
	ApplyProps(n, nil, Props{"once": "fade"})
	assert.Equal(t, "fade", attr(t, n, "once"))
	assert.False(t, HasListener(n, "ce"))

	// A handler displacing an attribute value unsets it, and vice versa.
	old := Props{"onClick": "legacy"}
	ApplyProps(n, nil, old)
	assert.Equal(t, "legacy", attr(t, n, "onClick"))

	next := Props{"onClick": func(Event) {}}
	ApplyProps(n, old, next)
	_, present := GetAttr(n, "onClick")
	assert.False(t, present)
	assert.True(t, HasListener(n, "click"))

	ApplyProps(n, next, old)
	assert.False(t, HasListener(n, "click"))
	assert.Equal(t, "legacy", attr(t, n, "onClick"))
}

func TestApplyProps_KeyNeverReachesAttributes(t *testing.T) {
	n := NewElement("li")
	ApplyProps(n, nil, Props{"key": "row", "id": "x"})
	_, present := GetAttr(n, "key")
	assert.False(t, present)
	assert.Equal(t, "x", attr(t, n, "id"))
}

func TestApplyProps_UnsafeHTMLParsesFragment(t *testing.T) {
	n := NewElement("div")
	ApplyProps(n, nil, Props{"unsafeHTML": "<b>bold</b> text"})

	require.NotNil(t, n.FirstChild)
	assert.Equal(t, html.ElementNode, n.FirstChild.Type)
	assert.Equal(t, "b", n.FirstChild.Data)
	require.NotNil(t, n.FirstChild.NextSibling)
	assert.Equal(t, " text", n.FirstChild.NextSibling.Data)
}

func TestRef_BindAndSever(t *testing.T) {
	n := NewElement("input")
	ref := &Ref{}
	ApplyProps(n, nil, Props{"ref": ref})
	assert.Same(t, n, ref.Current)

	ApplyProps(n, Props{"ref": ref}, Props{})
	assert.Nil(t, ref.Current)
}

func TestRef_CallbackForm(t *testing.T) {
	var got *html.Node
	calls := 0
	cb := func(n *html.Node) { got = n; calls++ }

	n := NewElement("canvas")
	ApplyProps(n, nil, Props{"ref": cb})
	assert.Same(t, n, got)

	SeverRef(cb)
	assert.Nil(t, got)
	assert.Equal(t, 2, calls)
}
