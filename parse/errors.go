package parse

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrorType represents error categories. Categories drive exit-code mapping
// and suggestion logic in the argbind package.
type ErrorType string

const (
	ErrorTypeConfiguration   ErrorType = "configuration"
	ErrorTypeUsage           ErrorType = "usage"
	ErrorTypeMissingValue    ErrorType = "missing_value"
	ErrorTypeUnknownArgument ErrorType = "unknown_argument"
	ErrorTypeConversion      ErrorType = "conversion"
	ErrorTypeValidation      ErrorType = "validation"
)

// ConfigurationError reports a programming mistake in the parser setup:
// bad templates, missing converters or handlers, failing providers, or
// errors raised by mapping and validation delegates.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// NewConfigurationError creates a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// WithCause sets the underlying cause
func (e *ConfigurationError) WithCause(cause error) *ConfigurationError {
	e.Cause = cause
	return e
}

// UsageError reports a mistake in the user's input. It is meant to be shown
// to the user as is.
type UsageError struct {
	Type    ErrorType
	Message string
	// Context names the option, switch or argument being processed, e.g.
	// "option -n|--name" or "argument @0". Empty for leftover tokens.
	Context string
	// Token is the distinguished form of the offending token, if any.
	Token string
	// Value is the offending raw or converted value, if any.
	Value any
	Cause error
}

func (e *UsageError) Error() string {
	if e.Type == ErrorTypeValidation && e.Context != "" {
		return e.Context + ": " + e.Message
	}
	return e.Message
}

func (e *UsageError) Unwrap() error { return e.Cause }

// NewUsageError creates a generic usage error. Delegates may return it
// from mapping or validation code to report input problems unchanged.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Type: ErrorTypeUsage, Message: fmt.Sprintf(format, args...)}
}

// IsUsage reports whether err carries a UsageError.
func IsUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

// IsConfiguration reports whether err carries a ConfigurationError.
func IsConfiguration(err error) bool {
	var c *ConfigurationError
	return errors.As(err, &c)
}

func errOperandMissing(template *Template) *UsageError {
	return &UsageError{
		Type:    ErrorTypeMissingValue,
		Message: fmt.Sprintf("Option %q requires an operand value.", template.String()),
		Token:   template.String(),
	}
}

// ErrUnmatchedToken builds the error raised for a token no parser claimed.
func ErrUnmatchedToken(token Token) *UsageError {
	form := token.DistinguishedForm()
	return &UsageError{
		Type:    ErrorTypeUnknownArgument,
		Message: fmt.Sprintf("Invalid argument or option '%s'", form),
		Token:   form,
		Value:   token.Value,
	}
}

func errConversion(context, value string, target reflect.Type, cause error) *UsageError {
	return &UsageError{
		Type:    ErrorTypeConversion,
		Message: fmt.Sprintf("%s: could not convert %q to target type %s.", context, value, TypeName(target)),
		Context: context,
		Value:   value,
		Cause:   cause,
	}
}

func errValidation(context, message string, value any) *UsageError {
	return &UsageError{
		Type:    ErrorTypeValidation,
		Message: message,
		Context: context,
		Value:   value,
	}
}

// TypeName returns a short display name for t, e.g. "int" or "*time.Duration".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
