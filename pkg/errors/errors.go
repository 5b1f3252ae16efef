// Package errors provides structured error handling for the Fern library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration error: invalid render target,
	// missing Render implementation, nil subscriber. These are programmer
	// errors and are never swallowed.
	KindConfig
	// KindDescription indicates a node description the builder or
	// reconciler does not recognize.
	KindDescription
	// KindRender indicates a failure while producing or patching the
	// live tree.
	KindRender
	// KindStorage indicates a durable-storage read or write failure.
	KindStorage
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDescription:
		return "description"
	case KindRender:
		return "render"
	case KindStorage:
		return "storage"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// UIError represents a structured error in the Fern library.
type UIError struct {
	// Op is the operation that failed (e.g., "core.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// HookError represents a failure inside a user-supplied callback: a
// lifecycle hook, an event handler, a store listener, or a component's
// Render body. Hook errors are contained at the invocation boundary and
// never abort the surrounding reconciliation pass.
type HookError struct {
	// Component is the type name of the component involved, if any.
	Component string
	// Hook is the callback that failed ("Render", "Mounted",
	// "WillUnmount", "Updated", "listener", or an event name).
	Hook string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	where := e.Hook
	if e.Component != "" {
		where = e.Component + "." + e.Hook
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s: %v", where, e.Recovered)
	}
	return fmt.Sprintf("error in %s: %v", where, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Fern library.
type ErrorHandler interface {
	// HandleError is called when a structural or storage error occurs.
	HandleError(err *UIError)
	// HandleHookError is called when a user callback fails.
	HandleHookError(err *HookError)
}
