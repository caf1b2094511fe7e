package resolver

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
	"github.com/jdziat/simple-event-subscribers/pkg/registry"
	"github.com/jdziat/simple-event-subscribers/pkg/security"
)

// EventType is one event a handler is subscribed to.
type EventType struct {
	Name string
	Type reflect.Type
}

// Signature is the validated shape of a handler's invoker method.
type Signature struct {
	Handler reflect.Type
	Method  reflect.Method
	// Param is the declared parameter type, possibly a union.
	Param  reflect.Type
	Events []EventType
}

// Subscriptions returns the event name to invoker name mapping.
func (s *Signature) Subscriptions() map[string]string {
	out := make(map[string]string, len(s.Events))
	for _, e := range s.Events {
		out[e.Name] = s.Method.Name
	}
	return out
}

var defaultResolver = New()

// ResolveSubscriptions resolves handler against registry.Default using the
// Handle invoker.
func ResolveSubscriptions(handler any) (map[string]string, error) {
	return defaultResolver.Resolve(handler)
}

// Resolver derives subscriptions from handler types.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	invoker  string
	registry *registry.Registry
	logger   *zap.Logger
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	o := NewOptions()
	for _, opt := range opts {
		opt.Apply(o)
	}
	return &Resolver{
		invoker:  o.Invoker,
		registry: o.Registry,
		logger:   o.Logger,
	}
}

// Invoker returns the configured invoker method name.
func (r *Resolver) Invoker() string {
	return r.invoker
}

// Registry returns the registry used for event type lookups.
func (r *Resolver) Registry() *registry.Registry {
	return r.registry
}

// Resolve returns the subscriptions of handler's dynamic type.
// handler may also be a reflect.Type.
func (r *Resolver) Resolve(handler any) (map[string]string, error) {
	if handler == nil {
		return nil, &core.ResolveError{Kind: core.ErrNilHandler}
	}
	if t, ok := handler.(reflect.Type); ok {
		return r.ResolveType(t)
	}
	return r.ResolveType(reflect.TypeOf(handler))
}

// ResolveType returns the subscriptions of the handler type t.
func (r *Resolver) ResolveType(t reflect.Type) (map[string]string, error) {
	sig, err := r.Inspect(t)
	if err != nil {
		return nil, err
	}
	return sig.Subscriptions(), nil
}

// Inspect validates the invoker method of t and returns its signature.
func (r *Resolver) Inspect(t reflect.Type) (*Signature, error) {
	sig, err := r.inspect(t)
	if err != nil {
		r.logger.Debug("subscription resolution failed",
			zap.String("handler", typeString(t)),
			zap.String("method", r.invoker),
			zap.Error(err),
		)
		return nil, err
	}

	names := make([]string, len(sig.Events))
	for i, e := range sig.Events {
		names[i] = e.Name
	}
	r.logger.Debug("resolved subscriptions",
		zap.String("handler", typeString(t)),
		zap.String("method", sig.Method.Name),
		zap.Strings("events", names),
	)
	return sig, nil
}

func (r *Resolver) inspect(t reflect.Type) (*Signature, error) {
	if t == nil {
		return nil, &core.ResolveError{Kind: core.ErrNilHandler}
	}
	handlerName := t.String()

	method, offset, ok := findMethod(t, r.invoker)
	if !ok {
		return nil, &core.ResolveError{Kind: core.ErrMethodNotFound, Handler: handlerName, Method: r.invoker}
	}

	mt := method.Type
	if mt.NumIn()-offset != 1 || mt.IsVariadic() {
		return nil, &core.ResolveError{Kind: core.ErrInvalidArity, Handler: handlerName, Method: method.Name}
	}

	param := mt.In(offset)
	paramName := "parameter #1"
	if isUntyped(param) {
		return nil, &core.ResolveError{
			Kind:    core.ErrMissingParameterType,
			Handler: handlerName,
			Method:  method.Name,
			Param:   paramName,
		}
	}

	members, ok := decompose(param)
	if !ok {
		return nil, &core.ResolveError{
			Kind:    core.ErrUnresolvableType,
			Handler: handlerName,
			Method:  method.Name,
			Param:   paramName,
			Type:    param.String(),
		}
	}

	sig := &Signature{Handler: t, Method: method, Param: param}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		name, ok := r.registry.NameOf(m)
		if !ok {
			return nil, &core.ResolveError{
				Kind:    core.ErrUnknownEventType,
				Handler: handlerName,
				Method:  method.Name,
				Param:   paramName,
				Type:    registry.TypeName(m),
			}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		sig.Events = append(sig.Events, EventType{Name: name, Type: m})
	}
	return sig, nil
}

// findMethod looks name up in the method set of t, falling back to *t so
// pointer-receiver invokers are found from a value type. offset is the
// number of leading receiver inputs in the method's func type.
func findMethod(t reflect.Type, name string) (m reflect.Method, offset int, ok bool) {
	if m, ok = t.MethodByName(name); ok {
		if t.Kind() == reflect.Interface {
			return m, 0, true
		}
		return m, 1, true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		if m, ok = reflect.PointerTo(t).MethodByName(name); ok {
			return m, 1, true
		}
	}
	return reflect.Method{}, 0, false
}

// isUntyped reports whether t carries no type information (any).
func isUntyped(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.Name() == "" && t.NumMethod() == 0
}

// decompose splits a parameter type into its named member types.
func decompose(t reflect.Type) ([]reflect.Type, bool) {
	if !core.IsUnion(t) {
		n, ok := named(t)
		if !ok {
			return nil, false
		}
		return []reflect.Type{n}, true
	}

	members := core.UnionMembers(t)
	if len(members) == 0 || len(members) > security.MaxUnionMembers {
		return nil, false
	}
	out := make([]reflect.Type, 0, len(members))
	for _, m := range members {
		if m == nil {
			return nil, false
		}
		n, ok := named(m)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// named resolves t to a named, non-union type, stripping one pointer level.
func named(t reflect.Type) (reflect.Type, bool) {
	t = registry.Indirect(t)
	if t.Kind() == reflect.Pointer || t.Name() == "" || core.IsUnion(t) {
		return nil, false
	}
	return t, true
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
