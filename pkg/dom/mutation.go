package dom

import "golang.org/x/net/html"

// MutationOp identifies the kind of live-tree mutation.
type MutationOp int

const (
	OpSetAttr MutationOp = iota
	OpRemoveAttr
	OpSetText
	OpInsert
	OpRemove
	OpRawContent
)

func (op MutationOp) String() string {
	switch op {
	case OpSetAttr:
		return "set-attr"
	case OpRemoveAttr:
		return "remove-attr"
	case OpSetText:
		return "set-text"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpRawContent:
		return "raw-content"
	default:
		return "unknown"
	}
}

// Mutation describes a single mutation applied to the live tree.
type Mutation struct {
	Op   MutationOp
	Node *html.Node
	// Name is the attribute name for OpSetAttr and OpRemoveAttr.
	Name string
}

var mutationObserver func(Mutation)

// RecordMutations installs an observer that receives every mutation this
// package applies, and returns a function that removes it. Only one observer
// is active at a time; installing a new one replaces the previous. Intended
// for tests and devtools.
func RecordMutations(fn func(Mutation)) (stop func()) {
	mutationObserver = fn
	return func() { mutationObserver = nil }
}

func record(m Mutation) {
	if mutationObserver != nil {
		mutationObserver(m)
	}
}
