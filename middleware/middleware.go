// Package middleware provides handler middleware for argbind applications:
// Logger, Recovery, Timeout and Validator.
package middleware

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// The argbind package implements these interfaces. Keeping them here lets
// middleware be written without importing argbind.

// Context describes the invocation a handler is about to run.
type Context interface {
	// Context returns the context.Context passed to the run entry point.
	Context() context.Context

	// Done is closed when the invocation is canceled or timed out.
	Done() <-chan struct{}

	// Cancel cancels the invocation. It is idempotent.
	Cancel()

	// Args returns the raw command line arguments. Treat as read-only.
	Args() []string

	// Options returns the populated options object of the selected runtime.
	Options() any

	// Set stores a key/value pair for later middleware. Namespace keys,
	// e.g. "logger.request_id".
	Set(key string, value any)

	// Get returns a value stored with Set, or nil.
	Get(key string) any

	// Command describes the selected runtime. The root runtime reports the
	// application name.
	Command() Command
}

// Command is the descriptor of the selected runtime.
type Command interface {
	Name() string
	Description() string
}

// ActionFunc is the handler signature middleware wraps.
type ActionFunc func(ctx Context) error

// Middleware wraps an ActionFunc.
type Middleware func(next ActionFunc) ActionFunc

// MiddlewareChain is an ordered list of middleware.
type MiddlewareChain []Middleware

// Apply wraps action with the chain. The first middleware is the outermost.
func (chain MiddlewareChain) Apply(action ActionFunc) ActionFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		action = chain[i](action)
	}
	return action
}

// Use returns a new chain with middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(middleware))
	out = append(out, chain...)
	return append(out, middleware...)
}

// Chain creates a chain preserving order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// ValidationError is returned by Validator middleware.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// TimeoutError is returned when a handler exceeds its deadline.
type TimeoutError struct {
	Duration time.Duration
	Command  string
}

func (e *TimeoutError) Error() string {
	return "command '" + e.Command + "' timed out after " + e.Duration.String()
}

// RecoveryError is returned when a handler panicked.
type RecoveryError struct {
	Panic   any
	Command string
	Stack   []byte
}

func (e *RecoveryError) Error() string {
	return "command '" + e.Command + "' panicked: " + toString(e.Panic)
}

// MiddlewareConfig holds the settings shared by the built-in middleware.
type MiddlewareConfig struct {
	LogLevel       LogLevel
	LogOutput      LogOutput
	LogFormat      LogFormat
	Writer         io.Writer // overrides LogOutput when set
	IncludeArgs    bool
	PrintStack     bool
	StackSize      int
	DefaultTimeout time.Duration
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// LogOutput represents log output destinations
type LogOutput int

const (
	LogOutputStderr LogOutput = iota
	LogOutputStdout
	LogOutputNone
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// RequestInfo describes one handler invocation for logging.
type RequestInfo struct {
	Command   string
	Args      []string
	StartTime time.Time
	Duration  time.Duration
	Error     error
	Metadata  map[string]any
}

type MiddlewareOption func(config *MiddlewareConfig)

func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:       LogLevelInfo,
		LogOutput:      LogOutputStderr,
		LogFormat:      LogFormatText,
		IncludeArgs:    true,
		PrintStack:     true,
		StackSize:      4096,
		DefaultTimeout: 30 * time.Second,
	}
}

func newConfig(options []MiddlewareOption) *MiddlewareConfig {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return config
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

// WithWriter sends log and stack output to w.
func WithWriter(w io.Writer) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.Writer = w
	}
}

func WithTimeout(timeout time.Duration) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.DefaultTimeout = timeout
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

// output returns the configured destination, or nil when output is off.
func (c *MiddlewareConfig) output() io.Writer {
	if c.Writer != nil {
		return c.Writer
	}
	switch c.LogOutput {
	case LogOutputStdout:
		return os.Stdout
	case LogOutputNone:
		return nil
	case LogOutputStderr:
		return os.Stderr
	default:
		return os.Stderr
	}
}

func toString(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}

func getCommandName(ctx Context) string {
	cmd := ctx.Command()
	if cmd == nil {
		return "unknown"
	}
	return cmd.Name()
}
