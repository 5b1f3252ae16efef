package dom

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/errors"
)

// Props is the property bag of a node description. Keys are property names;
// values may be strings, numbers, booleans, handlers (on*), class values,
// style values, refs, or raw markup.
type Props map[string]any

// Reserved property names handled specially by ApplyProps.
const (
	PropKey        = "key"
	PropRef        = "ref"
	PropClass      = "class"
	PropStyle      = "style"
	PropUnsafeHTML = "unsafeHTML"
)

// HasRawContent reports whether the bag assigns opaque raw markup, in which
// case description children are ignored entirely.
func (p Props) HasRawContent() bool {
	_, ok := p[PropUnsafeHTML]
	return ok
}

// ApplyProps patches the difference between the old and new property bags
// onto n. Either bag may be nil; materialization passes a nil old bag.
// Properties whose values compare equal produce no mutations.
func ApplyProps(n *html.Node, old, new Props) {
	if !IsElement(n) {
		return
	}
	for name, oldVal := range old {
		if _, ok := new[name]; ok {
			continue
		}
		removeProp(n, name, oldVal)
	}
	for name, val := range new {
		if name == PropKey {
			continue
		}
		oldVal, had := old[name]
		if had && equalPropValue(oldVal, val) {
			continue
		}
		applyProp(n, name, oldVal, val, had)
	}
}

func removeProp(n *html.Node, name string, oldVal any) {
	switch {
	case name == PropKey:
	case name == PropRef:
		SeverRef(oldVal)
	case name == PropUnsafeHTML:
		RemoveChildren(n)
	case isEventProp(name) && isHandlerValue(oldVal):
		RemoveListener(n, eventName(name))
	default:
		RemoveAttr(n, name)
	}
}

func applyProp(n *html.Node, name string, oldVal, val any, had bool) {
	switch {
	case name == PropRef:
		if had {
			SeverRef(oldVal)
		}
		ApplyRef(val, n)
	case name == PropClass:
		if cls := classString(val); cls != "" {
			SetAttr(n, "class", cls)
		} else {
			RemoveAttr(n, "class")
		}
	case name == PropStyle:
		if style := styleString(val); style != "" {
			SetAttr(n, "style", style)
		} else {
			RemoveAttr(n, "style")
		}
	case name == PropUnsafeHTML:
		markup, _ := val.(string)
		if err := SetUnsafeHTML(n, markup); err != nil {
			errors.Report(&errors.UIError{
				Op:   "dom.SetUnsafeHTML",
				Kind: errors.KindRender,
				Err:  err,
			})
		}
	case isEventProp(name) && isHandlerValue(val):
		if had && !isHandlerValue(oldVal) {
			RemoveAttr(n, name)
		}
		AddListener(n, eventName(name), toHandler(val))
	case isEventProp(name):
		// An on*-named property with a non-handler value is a plain
		// attribute, e.g. "once". A handler it displaces is unbound.
		if had && isHandlerValue(oldVal) {
			RemoveListener(n, eventName(name))
		}
		applyAttr(n, name, val)
	default:
		applyAttr(n, name, val)
	}
}

// applyAttr sets or removes a plain attribute by truthiness: nil, false, and
// the empty string remove it; true sets a presence-only attribute; any other
// value is stringified.
func applyAttr(n *html.Node, name string, val any) {
	switch v := val.(type) {
	case nil:
		RemoveAttr(n, name)
	case bool:
		if v {
			SetAttr(n, name, "")
		} else {
			RemoveAttr(n, name)
		}
	case string:
		if v == "" {
			RemoveAttr(n, name)
		} else {
			SetAttr(n, name, v)
		}
	default:
		SetAttr(n, name, fmt.Sprintf("%v", v))
	}
}

func isEventProp(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on")
}

func eventName(prop string) string {
	return strings.ToLower(prop[2:])
}

// isHandlerValue reports whether val is usable as an event handler.
func isHandlerValue(val any) bool {
	return toHandler(val) != nil
}

func toHandler(val any) Handler {
	switch h := val.(type) {
	case nil:
		return nil
	case Handler:
		return h
	case func(Event):
		return h
	case func():
		return func(Event) { h() }
	default:
		return nil
	}
}

// classString renders the class property: a plain string, a slice of class
// names, or a class-list style map of name to enabled.
func classString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case map[string]bool:
		names := make([]string, 0, len(v))
		for name, on := range v {
			if on {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return strings.Join(names, " ")
	default:
		return ""
	}
}

// styleString renders the style property: a raw declaration string or a
// structured property map, serialized in sorted order so equal maps always
// produce identical attributes.
func styleString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for i, k := range keys {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v[k])
		}
		return sb.String()
	default:
		return ""
	}
}

// equalPropValue compares old and new property values. Function values never
// compare equal: a func's code pointer does not identify a closure (two
// closures from the same source line share one), so handlers must be
// re-registered every pass. The registration is a side-table write, not a
// recorded tree mutation, so re-applying an identical bag still produces
// zero mutations.
func equalPropValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.ValueOf(a).Kind() == reflect.Func || reflect.ValueOf(b).Kind() == reflect.Func {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Ref is a mutable-slot binding to a live node. The reconciler assigns
// Current when the node attaches and clears it when the node is disposed.
type Ref struct {
	Current *html.Node
}

// ApplyRef binds a ref property value to a live node. Callback refs are
// invoked with the node; *Ref slots are assigned.
func ApplyRef(ref any, n *html.Node) {
	callRef(ref, n)
}

// SeverRef severs a ref binding: callback refs are invoked with nil and
// *Ref slots are cleared. Disposal calls this for every removed node that
// carried a ref, so external references to plain elements are released too.
func SeverRef(ref any) {
	callRef(ref, nil)
}

func callRef(ref any, n *html.Node) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportHookError(&errors.HookError{
				Hook:       "ref",
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	switch r := ref.(type) {
	case func(*html.Node):
		r(n)
	case *Ref:
		r.Current = n
	}
}
