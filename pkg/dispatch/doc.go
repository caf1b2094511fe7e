// Package dispatch provides the Dispatcher, the consumer of resolved subscriptions.
//
// This package includes:
//   - Dispatcher: registers subscribers from their invoker signature and delivers events
//   - Option: configuration for the registry, invoker name, resolver and logger
//   - Interface subscriptions: events reach subscribers of any registered interface they implement
//   - Propagation control through core.Stoppable events
//
// Most users should import the root package github.com/jdziat/simple-event-subscribers
// which re-exports Dispatcher and all option functions.
package dispatch
