package core

// Stoppable is implemented by events that can halt delivery to the
// remaining listeners of a dispatch.
type Stoppable interface {
	IsPropagationStopped() bool
}

// PropagationStopper is an embeddable Stoppable implementation.
// Handlers receiving a pointer to the event call StopPropagation.
type PropagationStopper struct {
	stopped bool
}

// StopPropagation prevents listeners registered after the current one
// from receiving the event.
func (p *PropagationStopper) StopPropagation() {
	p.stopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (p *PropagationStopper) IsPropagationStopped() bool {
	return p.stopped
}
