// Package router resolves paths to component builders.
//
// Path patterns support static segments ("/items"), parameters
// ("/items/:id"), and a trailing wildcard ("/files/*path") that captures the
// remaining path. Resolution prefers static segments over parameters and
// parameters over wildcards, independent of route registration order.
package router

import (
	"net/url"
	"strings"

	"github.com/go-fern/fern/pkg/core"
)

// Params holds values captured from a matched path.
type Params map[string]string

// Match is the result of resolving a path.
type Match struct {
	// Pattern is the matched route's pattern.
	Pattern string
	// Params holds :param and *wildcard captures.
	Params Params
	// Query holds parsed query-string values.
	Query url.Values
}

// Builder produces the description tree for a matched route.
type Builder func(m Match) *core.VNode

// Route pairs a path pattern with a builder.
type Route struct {
	Path  string
	Build Builder
}

// Router is a path-matching route table.
type Router struct {
	routes []compiledRoute
	// NotFound builds the description for unmatched paths. Optional.
	NotFound Builder
}

type segment struct {
	literal  string
	param    string
	wildcard bool
}

type compiledRoute struct {
	pattern  string
	segments []segment
	build    Builder
}

// New compiles the route table.
func New(routes ...Route) *Router {
	r := &Router{}
	for _, route := range routes {
		r.routes = append(r.routes, compileRoute(route))
	}
	return r
}

func compileRoute(route Route) compiledRoute {
	compiled := compiledRoute{pattern: route.Path, build: route.Build}
	for _, part := range splitPath(route.Path) {
		switch {
		case strings.HasPrefix(part, ":"):
			compiled.segments = append(compiled.segments, segment{param: part[1:]})
		case strings.HasPrefix(part, "*"):
			compiled.segments = append(compiled.segments, segment{param: part[1:], wildcard: true})
		default:
			compiled.segments = append(compiled.segments, segment{literal: part})
		}
	}
	return compiled
}

// Resolve matches path against the route table and returns the best match.
// The query string, if any, is parsed into Match.Query and ignored for
// matching.
func (r *Router) Resolve(path string) (Match, Builder, bool) {
	pathOnly := path
	var query url.Values
	if before, after, found := strings.Cut(path, "?"); found {
		pathOnly = before
		q, _, _ := strings.Cut(after, "#")
		query, _ = url.ParseQuery(q)
	}
	pathOnly, _, _ = strings.Cut(pathOnly, "#")
	parts := splitPath(pathOnly)

	bestScore := -1
	var best Match
	var bestBuild Builder
	for _, route := range r.routes {
		params, score, ok := route.match(parts)
		if ok && score > bestScore {
			bestScore = score
			bestBuild = route.build
			best = Match{Pattern: route.pattern, Params: params, Query: query}
		}
	}
	if bestScore < 0 {
		return Match{}, nil, false
	}
	if best.Query == nil {
		best.Query = url.Values{}
	}
	return best, bestBuild, true
}

// Render resolves path and builds its description, falling back to NotFound.
// It returns nil when nothing matches and no fallback is set.
func (r *Router) Render(path string) *core.VNode {
	match, build, ok := r.Resolve(path)
	if !ok {
		if r.NotFound != nil {
			return r.NotFound(Match{Params: Params{}, Query: url.Values{}})
		}
		return nil
	}
	if build == nil {
		return nil
	}
	return build(match)
}

// match scores a candidate: static segments outrank params, params outrank
// wildcards, so "/items/new" beats "/items/:id" beats "/items/*rest".
func (c compiledRoute) match(parts []string) (Params, int, bool) {
	params := Params{}
	score := 0
	for i, seg := range c.segments {
		if seg.wildcard {
			params[seg.param] = strings.Join(parts[i:], "/")
			return params, score + 1, true
		}
		if i >= len(parts) {
			return nil, 0, false
		}
		switch {
		case seg.param != "":
			params[seg.param] = parts[i]
			score += 2
		case seg.literal == parts[i]:
			score += 3
		default:
			return nil, 0, false
		}
	}
	if len(parts) != len(c.segments) {
		return nil, 0, false
	}
	return params, score, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
