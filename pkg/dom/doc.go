// Package dom provides the live presentation tree that fern renders into.
//
// The tree is made of golang.org/x/net/html nodes: elements, text leaves,
// and comment nodes (used as fragment boundary markers). This package wraps
// the raw node surface with constructors, ordered insertion and range-move
// helpers, a diffing property applicator, and an event listener registry.
//
// html.Node carries no user-defined fields, so per-node bookkeeping that
// cannot live on node descriptions (event listeners, most notably) is kept
// in explicit side tables owned by this package. Release must be called
// when a node leaves the tree for good so those tables do not grow without
// bound.
//
// Unless noted otherwise the functions in this package are not safe for
// concurrent use; fern's execution model is single-threaded run-to-completion.
package dom
