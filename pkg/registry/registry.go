// Package registry tracks the event types known to the subscribers package.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
	"github.com/jdziat/simple-event-subscribers/pkg/security"
)

// Entry is a single (name, type) association in a Registry snapshot.
type Entry struct {
	Name string
	Type reflect.Type
}

// IsInterface reports whether the entry names an interface type.
func (e Entry) IsInterface() bool {
	return e.Type.Kind() == reflect.Interface
}

// Registry maps event names to the concrete and interface types they denote.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// Default is the registry used by the package-level helpers.
var Default = New()

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register records T under its qualified type name.
// Use an interface type argument to register an interface.
func Register[T any](r *Registry) error {
	return r.RegisterType(reflect.TypeOf((*T)(nil)).Elem())
}

// RegisterAs records T under a custom event name.
func RegisterAs[T any](r *Registry, name string) error {
	return r.RegisterAlias(reflect.TypeOf((*T)(nil)).Elem(), name)
}

// RegisterType records t under its qualified type name. A single pointer
// level is stripped, so *T and T register the same event type.
func (r *Registry) RegisterType(t reflect.Type) error {
	t = Indirect(t)
	name := TypeName(t)
	if name == "" {
		return fmt.Errorf("%w: %v", core.ErrUnnamedType, t)
	}
	return r.add(t, name)
}

// RegisterAlias records t under name, which must be a valid event name.
func (r *Registry) RegisterAlias(t reflect.Type, name string) error {
	if err := security.ValidateEventName(name); err != nil {
		return err
	}
	t = Indirect(t)
	if TypeName(t) == "" {
		return fmt.Errorf("%w: %v", core.ErrUnnamedType, t)
	}
	return r.add(t, name)
}

func (r *Registry) add(t reflect.Type, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("%w: %q is already registered for %v", core.ErrDuplicateEventName, name, existing)
	}
	if existing, ok := r.byType[t]; ok {
		return fmt.Errorf("%w: %v is already registered as %q", core.ErrDuplicateEventName, t, existing)
	}

	r.byName[name] = t
	r.byType[t] = name
	return nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// NameOf returns the event name registered for t.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	t = Indirect(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	return name, ok
}

// Exists reports whether name denotes a registered concrete or interface type.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Entries returns a snapshot of all registrations sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.byName))
	for name, t := range r.byName {
		entries = append(entries, Entry{Name: name, Type: t})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Interfaces returns the registered interface types sorted by name.
func (r *Registry) Interfaces() []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.IsInterface() {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of registered event types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Reset clears all registrations.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.byName = make(map[string]reflect.Type)
	r.byType = make(map[reflect.Type]string)
	r.mu.Unlock()
}

// Indirect strips one pointer level from t.
func Indirect(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// TypeName returns the qualified name of t ("<pkgpath>.<Name>"), the bare
// name for predeclared types, or "" for unnamed types.
func TypeName(t reflect.Type) string {
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
