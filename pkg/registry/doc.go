// Package registry provides the set of event types subscriptions may name.
//
// Go keeps no runtime index of types by name, so event types are registered
// explicitly, either under their qualified name ("example.com/app/events.UserCreated")
// or under a custom alias ("user.created"). Interface types may be registered
// too; handlers subscribed to an interface receive every event implementing it.
//
// Most users should import the root package github.com/jdziat/simple-event-subscribers
// which re-exports Registry and the registration helpers.
package registry
