// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpLoadConfig  Op = "load configuration"
	OpOpenHistory Op = "open transition history"
	OpConnectBus  Op = "connect to the notification service"
	OpOpenLog     Op = "open log file"

	// Runtime
	OpRunAction        Op = "run"
	OpRecordTransition Op = "record transition"
	OpNotify           Op = "send desktop notification"

	// History CLI
	OpListHistory  Op = "list transitions"
	OpPruneHistory Op = "prune transitions"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context, typically
// the name of the button involved.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Cause returns the innermost error of a wrap chain, which is usually the
// most readable part to show in a narrow cell.
func Cause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
