package core

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/go-fern/fern/pkg/dom"
	ferrors "github.com/go-fern/fern/pkg/errors"
)

// renderedContent maps a container to the description tree last rendered
// into it, so a subsequent Render can dispose the previous content.
var renderedContent = map[*html.Node]*VNode{}

// Render materializes a description tree into container using the default
// scheduler. Any previous content of the container is disposed and removed
// first. Mounted notifications are deferred; drive them with [Flush] (or the
// scheduler's OnWake hook). It returns a configuration error when container
// is not an element.
func Render(v *VNode, container *html.Node) error {
	return RenderWith(v, container, defaultScheduler)
}

// RenderWith is Render with an explicit scheduler.
func RenderWith(v *VNode, container *html.Node, sched *Scheduler) error {
	if !dom.IsElement(container) {
		return &ferrors.UIError{
			Op:   "core.Render",
			Kind: ferrors.KindConfig,
			Err:  fmt.Errorf("render target is not an element node"),
		}
	}
	if prev, ok := renderedContent[container]; ok {
		dispose(prev, nil)
		delete(renderedContent, container)
	}
	dom.RemoveChildren(container)
	if v == nil {
		return nil
	}
	materializeInto(container, v, nil, sched)
	renderedContent[container] = v
	return nil
}
