// Package security provides validation and limits for the subscribers package.
package security

import (
	"regexp"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
)

// Limits
const (
	// MaxEventNameLength is the maximum length for custom event names
	MaxEventNameLength = 255

	// MaxUnionMembers is the widest union a handler parameter may declare
	MaxUnionMembers = 16
)

// validEventName matches alphanumeric, hyphens, underscores, and dots
var validEventName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-\.]*$`)

// ValidateEventName validates a custom event name
func ValidateEventName(name string) error {
	if name == "" {
		return core.ErrInvalidEventName
	}
	if len(name) > MaxEventNameLength {
		return core.ErrEventNameTooLong
	}
	if !validEventName.MatchString(name) {
		return core.ErrInvalidEventName
	}
	return nil
}
