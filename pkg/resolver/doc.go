// Package resolver derives event subscriptions from a handler's invoker method.
//
// A handler type exposes one invoker method (Handle by default) taking a single
// event parameter. The resolver inspects that parameter's type, decomposes a
// union (core.OneOf2 and friends) into its members, checks every member against
// a registry, and returns a map from event name to invoker method name.
//
// Most users should import the root package github.com/jdziat/simple-event-subscribers
// which re-exports Resolver and its options.
package resolver
