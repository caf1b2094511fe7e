// Package core provides the fundamental types for the subscribers package.
//
// This package contains:
//   - Error values and the ResolveError type reported by subscription resolution
//   - Union marker types (OneOf2, OneOf3, OneOf4) for handlers accepting several events
//   - The Stoppable interface honored by the dispatcher
//
// Most users should import the root package github.com/jdziat/simple-event-subscribers
// instead of this package directly.
package core
