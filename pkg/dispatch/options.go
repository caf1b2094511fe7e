package dispatch

import (
	"go.uber.org/zap"

	"github.com/jdziat/simple-event-subscribers/pkg/registry"
	"github.com/jdziat/simple-event-subscribers/pkg/resolver"
)

// Options holds Dispatcher configuration.
type Options struct {
	Registry *registry.Registry
	Invoker  string
	Logger   *zap.Logger
	// Resolver, when set, takes precedence over Registry and Invoker.
	Resolver *resolver.Resolver
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Registry: registry.Default,
		Invoker:  resolver.DefaultInvoker,
		Logger:   zap.NewNop(),
	}
}

// Option modifies Options.
type Option interface {
	Apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) Apply(o *Options) { f(o) }

// WithRegistry sets the registry used to name events.
func WithRegistry(r *registry.Registry) Option {
	return optionFunc(func(o *Options) {
		if r != nil {
			o.Registry = r
		}
	})
}

// WithInvoker sets the invoker method name subscribers expose.
func WithInvoker(name string) Option {
	return optionFunc(func(o *Options) {
		if name != "" {
			o.Invoker = name
		}
	})
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	})
}

// WithResolver sets a preconfigured resolver.
func WithResolver(r *resolver.Resolver) Option {
	return optionFunc(func(o *Options) {
		o.Resolver = r
	})
}
