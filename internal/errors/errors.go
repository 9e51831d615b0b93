// Package apperrors classifies the failures of convkit's outer layers. The
// conversion sessions never fail loudly: a parse error leaves the canonical
// value unset. Errors only appear where a request has to be refused (bad
// flags, unknown base or unit, oversized input) or where the process itself
// fails (server start, I/O, timeouts).
//
// Every type here implements Unwrap where it carries a cause, so callers test
// classes with errors.Is and errors.As rather than by message.
package apperrors

import (
	"fmt"
)

// Process exit statuses. ExitErrorInvalidInput is returned when the edited
// text does not resolve to a value, even though nothing went wrong.
const (
	ExitSuccess           = 0   // Conversion resolved.
	ExitErrorGeneric      = 1   // I/O, server or unclassified failure.
	ExitErrorTimeout      = 2   // -timeout elapsed.
	ExitErrorInvalidInput = 3   // The input does not resolve to a value.
	ExitErrorConfig       = 4   // Bad flags or environment.
	ExitErrorCanceled     = 130 // SIGINT or SIGTERM.
)

// ConfigError reports a flag, environment variable or ladder that prevents
// convkit from starting.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError rejects a request parameter before any session is built:
// a base outside 2..36, an unknown unit, an oversized batch line.
type ValidationError struct {
	// Field names the parameter ("base", "unit", "batch").
	Field string
	// Message says what was expected.
	Message string
	// Value is the rejected value, or nil.
	Value any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// ConversionError reports edited text that did not resolve to a value. The
// sessions record the parse error instead of returning it; the one-shot CLI
// raises it to pick the exit status.
type ConversionError struct {
	// Input is the edited text, verbatim.
	Input string
	// Cause is the parse error, or nil when only its message survived.
	Cause error
}

func (e ConversionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cannot convert %q", e.Input)
	}
	return fmt.Sprintf("cannot convert %q: %v", e.Input, e.Cause)
}

// Unwrap exposes the parse error, e.g. for errors.Is(err, numeric.ErrInvalidDigit).
func (e ConversionError) Unwrap() error { return e.Cause }

// NewConversionError wraps the parse error of input.
//
// Parameters:
//   - input: The text that could not be converted.
//   - cause: The parse error, or nil.
//
// Returns:
//   - error: A new ConversionError instance.
func NewConversionError(input string, cause error) error {
	return ConversionError{Input: input, Cause: cause}
}

// ServerError reports an HTTP listener that failed to start or to drain.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError wraps cause, which may be nil, with message.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil, so the
// result can be returned unconditionally.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
