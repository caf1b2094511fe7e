// Package subscribers derives event subscriptions from a handler's own
// invoker signature.
//
// This is the main package users should import. It re-exports all public
// types from the internal pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Register the event types handlers may name
//	subscribers.Register[UserCreated](subscribers.DefaultRegistry)
//	subscribers.RegisterAs[UserDeleted](subscribers.DefaultRegistry, "user.deleted")
//
//	// A handler subscribes by declaring the event it takes
//	type Mailer struct{}
//	func (Mailer) Handle(e subscribers.OneOf2[UserCreated, UserDeleted]) error { ... }
//
//	// Resolve the mapping for an external dispatcher...
//	subs, err := subscribers.ResolveSubscriptions(Mailer{})
//	// map["example.com/app.UserCreated":"Handle" "user.deleted":"Handle"]
//
//	// ...or use the built-in dispatcher
//	d := subscribers.NewDispatcher()
//	d.AddSubscriber(Mailer{})
//	d.Dispatch(ctx, UserCreated{ID: "42"})
package subscribers

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
	"github.com/jdziat/simple-event-subscribers/pkg/dispatch"
	"github.com/jdziat/simple-event-subscribers/pkg/registry"
	"github.com/jdziat/simple-event-subscribers/pkg/resolver"
	"github.com/jdziat/simple-event-subscribers/pkg/security"
)

// Type aliases
type (
	// Registry maps event names to concrete and interface types.
	Registry = registry.Registry

	// Entry is a single (name, type) association in a Registry snapshot.
	Entry = registry.Entry

	// Resolver derives subscriptions from handler types.
	Resolver = resolver.Resolver

	// ResolverOption configures a Resolver.
	ResolverOption = resolver.Option

	// Signature is the validated shape of a handler's invoker method.
	Signature = resolver.Signature

	// EventType is one event a handler is subscribed to.
	EventType = resolver.EventType

	// Dispatcher delivers events to resolved subscribers.
	Dispatcher = dispatch.Dispatcher

	// DispatcherOption configures a Dispatcher.
	DispatcherOption = dispatch.Option

	// ResolveError describes why a handler could not be resolved.
	ResolveError = core.ResolveError

	// Union is implemented by parameter types that stand for several events.
	Union = core.Union

	// Stoppable is implemented by events that can halt delivery.
	Stoppable = core.Stoppable

	// PropagationStopper is an embeddable Stoppable implementation.
	PropagationStopper = core.PropagationStopper
)

// OneOf2 declares a handler parameter accepting either T1 or T2.
type OneOf2[T1, T2 any] = core.OneOf2[T1, T2]

// OneOf3 declares a handler parameter accepting T1, T2 or T3.
type OneOf3[T1, T2, T3 any] = core.OneOf3[T1, T2, T3]

// OneOf4 declares a handler parameter accepting T1, T2, T3 or T4.
type OneOf4[T1, T2, T3, T4 any] = core.OneOf4[T1, T2, T3, T4]

// DefaultInvoker is the invoker method looked up when none is configured.
const DefaultInvoker = resolver.DefaultInvoker

// Limits
const (
	MaxEventNameLength = security.MaxEventNameLength
	MaxUnionMembers    = security.MaxUnionMembers
)

// Error variables
var (
	ErrNilHandler           = core.ErrNilHandler
	ErrMethodNotFound       = core.ErrMethodNotFound
	ErrInvalidArity         = core.ErrInvalidArity
	ErrMissingParameterType = core.ErrMissingParameterType
	ErrUnresolvableType     = core.ErrUnresolvableType
	ErrUnknownEventType     = core.ErrUnknownEventType
	ErrInvalidEventName     = core.ErrInvalidEventName
	ErrEventNameTooLong     = core.ErrEventNameTooLong
	ErrDuplicateEventName   = core.ErrDuplicateEventName
	ErrUnnamedType          = core.ErrUnnamedType
	ErrInvalidReturn        = core.ErrInvalidReturn
)

// DefaultRegistry is the registry used by ResolveSubscriptions and by
// resolvers and dispatchers built without WithRegistry.
var DefaultRegistry = registry.Default

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return registry.New()
}

// Register records T in r under its qualified type name.
func Register[T any](r *Registry) error {
	return registry.Register[T](r)
}

// RegisterAs records T in r under a custom event name.
func RegisterAs[T any](r *Registry, name string) error {
	return registry.RegisterAs[T](r, name)
}

// TypeName returns the qualified name of t, or "" for unnamed types.
func TypeName(t reflect.Type) string {
	return registry.TypeName(t)
}

// ValidateEventName validates a custom event name.
func ValidateEventName(name string) error {
	return security.ValidateEventName(name)
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	return resolver.New(opts...)
}

// ResolveSubscriptions returns the event name to invoker name mapping of
// handler, resolved against DefaultRegistry.
func ResolveSubscriptions(handler any) (map[string]string, error) {
	return resolver.ResolveSubscriptions(handler)
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	return dispatch.New(opts...)
}

// Resolver option functions

// WithInvoker sets the name of the invoker method.
func WithInvoker(name string) ResolverOption {
	return resolver.WithInvoker(name)
}

// WithRegistry sets the registry event types are resolved against.
func WithRegistry(r *Registry) ResolverOption {
	return resolver.WithRegistry(r)
}

// WithLogger sets the resolver logger.
func WithLogger(l *zap.Logger) ResolverOption {
	return resolver.WithLogger(l)
}

// Dispatcher option functions

// DispatchRegistry sets the registry used to name events.
func DispatchRegistry(r *Registry) DispatcherOption {
	return dispatch.WithRegistry(r)
}

// DispatchInvoker sets the invoker method name subscribers expose.
func DispatchInvoker(name string) DispatcherOption {
	return dispatch.WithInvoker(name)
}

// DispatchResolver sets a preconfigured resolver.
func DispatchResolver(r *Resolver) DispatcherOption {
	return dispatch.WithResolver(r)
}

// DispatchLogger sets the dispatcher logger.
func DispatchLogger(l *zap.Logger) DispatcherOption {
	return dispatch.WithLogger(l)
}
