package core

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution errors
var (
	ErrNilHandler           = errors.New("subscribers: handler cannot be nil")
	ErrMethodNotFound       = errors.New("subscribers: invoker method not found")
	ErrInvalidArity         = errors.New("subscribers: invoker method must have exactly one parameter")
	ErrMissingParameterType = errors.New("subscribers: invoker parameter must have a type")
	ErrUnresolvableType     = errors.New("subscribers: invoker parameter type cannot be resolved to named types")
	ErrUnknownEventType     = errors.New("subscribers: event type not found")
)

// Registry and dispatch errors
var (
	ErrInvalidEventName   = errors.New("subscribers: invalid event name (must be alphanumeric, start with letter)")
	ErrEventNameTooLong   = errors.New("subscribers: event name too long")
	ErrDuplicateEventName = errors.New("subscribers: conflicting event registration")
	ErrUnnamedType        = errors.New("subscribers: only named types can be registered")
	ErrInvalidReturn      = errors.New("subscribers: invoker method must return nothing or error")
)

// ResolveError describes why a handler type could not be resolved into
// subscriptions. Kind is one of the resolution sentinel errors above, so
// callers can match it with errors.Is.
type ResolveError struct {
	Kind    error
	Handler string
	Method  string
	Param   string
	Type    string
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	switch {
	case errors.Is(e.Kind, ErrUnknownEventType):
		fmt.Fprintf(&b, ": %q", e.Type)
	case errors.Is(e.Kind, ErrMissingParameterType):
		fmt.Fprintf(&b, ": %s of method %q", e.Param, e.Method)
	case errors.Is(e.Kind, ErrUnresolvableType):
		fmt.Fprintf(&b, ": %s (%s) of method %q", e.Param, e.Type, e.Method)
	case e.Method != "":
		fmt.Fprintf(&b, ": %q", e.Method)
	}
	if e.Handler != "" {
		fmt.Fprintf(&b, " on %s", e.Handler)
	}
	return b.String()
}

func (e *ResolveError) Unwrap() error {
	return e.Kind
}
