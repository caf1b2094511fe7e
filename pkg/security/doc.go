// Package security provides validation and limits for the subscribers package.
//
// This package includes:
//   - Input validation for custom event names registered as aliases
//   - Limits defining maximum name sizes and union widths
//
// Most users should import the root package github.com/jdziat/simple-event-subscribers
// which re-exports these functions.
package security
