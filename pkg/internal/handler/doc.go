// Package handler provides internal reflection-based invoker execution.
//
// This package is internal and should not be imported directly.
// It provides:
//   - Handler: a subscriber's invoker method bound to its receiver
//   - Argument adaptation (pointer/value and union wrapping) before invocation
//   - Panic recovery around invoker calls
package handler
