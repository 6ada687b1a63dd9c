package argbind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dzonerzy/go-argbind/internal/fuzzy"
	"github.com/dzonerzy/go-argbind/internal/pool"
	"github.com/dzonerzy/go-argbind/parse"
)

// Special errors for graceful exits
var (
	// ErrHelpShown is returned by Run after help content was written.
	ErrHelpShown = errors.New("help shown")
	// ErrHelpRequested is returned by Parse when the help option matched.
	ErrHelpRequested = errors.New("help requested")
)

// ErrorType represents error categories. These categories drive suggestion
// logic and exit-code mapping (via ExitCodeManager).
type ErrorType = parse.ErrorType

const (
	ErrorTypeConfiguration   = parse.ErrorTypeConfiguration
	ErrorTypeUsage           = parse.ErrorTypeUsage
	ErrorTypeMissingValue    = parse.ErrorTypeMissingValue
	ErrorTypeUnknownArgument = parse.ErrorTypeUnknownArgument
	ErrorTypeConversion      = parse.ErrorTypeConversion
	ErrorTypeValidation      = parse.ErrorTypeValidation
	// ErrorTypeHandler marks errors returned by a handler.
	ErrorTypeHandler ErrorType = "handler"
)

// CLIError is a user-facing error with suggestions.
type CLIError struct {
	Type           ErrorType
	Message        string
	Suggestions    []string
	Cause          error
	Context        map[string]any
	formattedError string // message plus suggestions, set by the ErrorHandler
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.formattedError != "" {
		return e.formattedError
	}
	return e.Message
}

// Unwrap returns the cause, so IsUsage and errors.As see through a CLIError.
func (e *CLIError) Unwrap() error { return e.Cause }

// NewError creates a new CLIError with the given type and message
func NewError(typ ErrorType, message string) *CLIError {
	return &CLIError{
		Type:        typ,
		Message:     message,
		Suggestions: make([]string, 0),
		Context:     make(map[string]any),
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithCause adds an underlying cause to the error
func (e *CLIError) WithCause(cause error) *CLIError {
	e.Cause = cause
	return e
}

// WithContext adds context information to the error
func (e *CLIError) WithContext(key string, value any) *CLIError {
	e.Context[key] = value
	return e
}

// suggestionScope lists what the user could have typed in the runtimes that
// were active when the error happened.
type suggestionScope struct {
	forms    []string
	commands []string
}

// ErrorHandler turns usage errors into CLIErrors with "Did you mean" hints.
type ErrorHandler struct {
	suggestCommands bool
	suggestOptions  bool
	maxDistance     int
	maxSuggestions  int
	customHandlers  map[ErrorType]func(*CLIError) *CLIError
}

// NewErrorHandler creates an error handler with option and command
// suggestions enabled.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		suggestCommands: true,
		suggestOptions:  true,
		maxDistance:     2,
		maxSuggestions:  1,
		customHandlers:  make(map[ErrorType]func(*CLIError) *CLIError),
	}
}

// SuggestCommands enables/disables command suggestions
func (eh *ErrorHandler) SuggestCommands(enabled bool) *ErrorHandler {
	eh.suggestCommands = enabled
	return eh
}

// SuggestOptions enables/disables option and switch suggestions
func (eh *ErrorHandler) SuggestOptions(enabled bool) *ErrorHandler {
	eh.suggestOptions = enabled
	return eh
}

// MaxDistance sets the maximum edit distance for suggestions
func (eh *ErrorHandler) MaxDistance(distance int) *ErrorHandler {
	eh.maxDistance = distance
	return eh
}

// MaxSuggestions caps the number of "Did you mean" lines.
func (eh *ErrorHandler) MaxSuggestions(n int) *ErrorHandler {
	eh.maxSuggestions = max(n, 1)
	return eh
}

// Handle registers a custom handler for a specific error type. It runs
// before suggestions are added.
func (eh *ErrorHandler) Handle(typ ErrorType, handler func(*CLIError) *CLIError) *ErrorHandler {
	eh.customHandlers[typ] = handler
	return eh
}

// process converts usage errors into formatted CLIErrors. Every other error
// is returned unchanged.
func (eh *ErrorHandler) process(err error, scope suggestionScope) error {
	var usage *parse.UsageError
	if !errors.As(err, &usage) {
		return err
	}

	cliErr := NewError(usage.Type, usage.Error()).WithCause(err)
	if usage.Token != "" {
		_ = cliErr.WithContext("token", usage.Token)
	}
	if usage.Context != "" {
		_ = cliErr.WithContext("context", usage.Context)
	}

	if handler, ok := eh.customHandlers[cliErr.Type]; ok {
		if handled := handler(cliErr); handled != nil {
			cliErr = handled
		}
	}

	switch cliErr.Type {
	case ErrorTypeUnknownArgument:
		eh.addTokenSuggestions(cliErr, usage, scope)
	case ErrorTypeConversion:
		// The converter usually knows better what it expected, e.g. the
		// choices of a dictionary converter.
		if usage.Cause != nil {
			_ = cliErr.WithSuggestion(usage.Cause.Error())
		}
	case ErrorTypeConfiguration, ErrorTypeUsage, ErrorTypeMissingValue,
		ErrorTypeValidation, ErrorTypeHandler:
	}

	return eh.formatError(cliErr)
}

func (eh *ErrorHandler) addTokenSuggestions(err *CLIError, usage *parse.UsageError, scope suggestionScope) {
	candidates := pool.GetStringSlice()
	defer pool.PutStringSlice(candidates)

	isOption := strings.HasPrefix(usage.Token, "-")
	switch {
	case isOption && eh.suggestOptions:
		*candidates = append(*candidates, scope.forms...)
	case !isOption && eh.suggestCommands:
		*candidates = append(*candidates, scope.commands...)
	default:
		return
	}

	for _, match := range fuzzy.Suggest(usage.Token, *candidates, eh.maxDistance, eh.maxSuggestions) {
		_ = err.WithSuggestion(fmt.Sprintf("Did you mean '%s'?", match))
	}
}

// formatError builds the error message with suggestions. The formatted
// message is stored in the CLIError and returned by Error().
func (eh *ErrorHandler) formatError(err *CLIError) *CLIError {
	var builder strings.Builder
	builder.WriteString(err.Message)
	for _, suggestion := range err.Suggestions {
		builder.WriteString("\n  ")
		builder.WriteString(suggestion)
	}
	err.formattedError = builder.String()
	return err
}

// describe returns a CLIError for any run error, for printing.
func describe(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	switch {
	case parse.IsConfiguration(err):
		return NewError(ErrorTypeConfiguration, err.Error()).WithCause(err)
	case parse.IsUsage(err):
		return NewError(ErrorTypeUsage, err.Error()).WithCause(err)
	default:
		return NewError(ErrorTypeHandler, err.Error()).WithCause(err)
	}
}
