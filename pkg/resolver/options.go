package resolver

import (
	"go.uber.org/zap"

	"github.com/jdziat/simple-event-subscribers/pkg/registry"
)

// DefaultInvoker is the invoker method looked up when none is configured.
const DefaultInvoker = "Handle"

// Options holds Resolver configuration.
type Options struct {
	Invoker  string
	Registry *registry.Registry
	Logger   *zap.Logger
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Invoker:  DefaultInvoker,
		Registry: registry.Default,
		Logger:   zap.NewNop(),
	}
}

// Option modifies Options.
type Option interface {
	Apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) Apply(o *Options) { f(o) }

// WithInvoker sets the name of the invoker method.
// Empty names are ignored.
func WithInvoker(name string) Option {
	return optionFunc(func(o *Options) {
		if name != "" {
			o.Invoker = name
		}
	})
}

// WithRegistry sets the registry event types are resolved against.
func WithRegistry(r *registry.Registry) Option {
	return optionFunc(func(o *Options) {
		if r != nil {
			o.Registry = r
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
