// Package dispatch provides an in-process event dispatcher fed by resolved subscriptions.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
	"github.com/jdziat/simple-event-subscribers/pkg/internal/handler"
	"github.com/jdziat/simple-event-subscribers/pkg/registry"
	"github.com/jdziat/simple-event-subscribers/pkg/resolver"
)

// Dispatcher delivers events to subscribers registered by their invoker
// signature. It is safe for concurrent use.
type Dispatcher struct {
	resolver *resolver.Resolver
	registry *registry.Registry
	logger   *zap.Logger

	mu          sync.RWMutex
	listeners   map[string][]*listener
	subscribers map[string][]string // subscriber ID -> event names
}

type listener struct {
	id      string
	name    string
	handler *handler.Handler
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	o := NewOptions()
	for _, opt := range opts {
		opt.Apply(o)
	}

	res := o.Resolver
	if res == nil {
		res = resolver.New(
			resolver.WithRegistry(o.Registry),
			resolver.WithInvoker(o.Invoker),
			resolver.WithLogger(o.Logger),
		)
	}

	return &Dispatcher{
		resolver:    res,
		registry:    res.Registry(),
		logger:      o.Logger,
		listeners:   make(map[string][]*listener),
		subscribers: make(map[string][]string),
	}
}

// AddSubscriber resolves sub's subscriptions and registers it for each
// event. It returns an ID for RemoveSubscriber.
func (d *Dispatcher) AddSubscriber(sub any) (string, error) {
	subs, err := d.resolver.Resolve(sub)
	if err != nil {
		return "", err
	}

	h, err := handler.NewHandler(sub, d.resolver.Invoker())
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)

	id := uuid.New().String()
	l := &listener{id: id, name: fmt.Sprintf("%T", sub), handler: h}

	d.mu.Lock()
	for _, name := range names {
		d.listeners[name] = append(d.listeners[name], l)
	}
	d.subscribers[id] = names
	d.mu.Unlock()

	d.logger.Debug("registered subscriber",
		zap.String("subscriber_id", id),
		zap.String("subscriber", l.name),
		zap.Strings("events", names),
	)
	return id, nil
}

// RemoveSubscriber unregisters a subscriber. It reports whether id was known.
func (d *Dispatcher) RemoveSubscriber(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	names, ok := d.subscribers[id]
	if !ok {
		return false
	}
	for _, name := range names {
		ls := d.listeners[name]
		filtered := make([]*listener, 0, len(ls))
		for _, l := range ls {
			if l.id != id {
				filtered = append(filtered, l)
			}
		}
		if len(filtered) == 0 {
			delete(d.listeners, name)
		} else {
			d.listeners[name] = filtered
		}
	}
	delete(d.subscribers, id)

	d.logger.Debug("removed subscriber", zap.String("subscriber_id", id))
	return true
}

// Dispatch delivers event to the listeners of its registered name and of
// every registered interface it implements. Listener errors are collected
// and returned together; they do not stop delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, event any) error {
	if event == nil {
		return fmt.Errorf("subscribers: nil event")
	}

	et := reflect.TypeOf(event)
	name, ok := d.registry.NameOf(et)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownEventType, registry.TypeName(registry.Indirect(et)))
	}

	targets := d.targets(name, et)
	stoppable, _ := event.(core.Stoppable)

	var errs []error
	for _, l := range targets {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if stoppable != nil && stoppable.IsPropagationStopped() {
			break
		}

		if err := l.handler.Execute(event); err != nil {
			d.logger.Error("event handler failed",
				zap.String("event_type", name),
				zap.String("subscriber_id", l.id),
				zap.String("subscriber", l.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
		}
	}
	return errors.Join(errs...)
}

// targets returns the listeners of name followed by the listeners of the
// interfaces et implements, each in registration order and each subscriber
// at most once.
func (d *Dispatcher) targets(name string, et reflect.Type) []*listener {
	names := []string{name}
	for _, e := range d.registry.Interfaces() {
		if e.Name != name && (et.Implements(e.Type) || registry.Indirect(et).Implements(e.Type)) {
			names = append(names, e.Name)
		}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]bool)
	var out []*listener
	for _, n := range names {
		for _, l := range d.listeners[n] {
			if !seen[l.id] {
				seen[l.id] = true
				out = append(out, l)
			}
		}
	}
	return out
}

// HasListeners reports whether any subscriber is registered for name.
func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name]) > 0
}

// EventNames returns the event names with at least one listener, sorted.
func (d *Dispatcher) EventNames() []string {
	d.mu.RLock()
	names := make([]string, 0, len(d.listeners))
	for name := range d.listeners {
		names = append(names, name)
	}
	d.mu.RUnlock()

	sort.Strings(names)
	return names
}
