package middleware

import (
	"fmt"
	"runtime"
)

// Recovery converts handler panics into *RecoveryError. With PrintStack the
// stack is captured and written to the configured output.
func Recovery(options ...MiddlewareOption) Middleware {
	config := newConfig(options)

	return RecoveryWithHandler(func(panicVal any, command string, stack []byte) error {
		if w := config.output(); w != nil && len(stack) > 0 {
			fmt.Fprintf(w, "PANIC in command '%s': %v\n", command, panicVal)
			fmt.Fprintf(w, "Stack trace:\n%s\n", stack)
		}
		return &RecoveryError{Panic: panicVal, Command: command, Stack: stack}
	}, options...)
}

// RecoveryWithHandler hands recovered panics to handler; its result becomes
// the handler's error. The panic value and stack are also stored on the
// context under "recovery.panic" and "recovery.stack".
func RecoveryWithHandler(
	handler func(panicVal any, command string, stack []byte) error,
	options ...MiddlewareOption,
) Middleware {
	config := newConfig(options)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if config.PrintStack {
						stack = make([]byte, config.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
					}
					ctx.Set("recovery.panic", r)
					ctx.Set("recovery.stack", string(stack))
					err = handler(r, getCommandName(ctx), stack)
				}
			}()

			return next(ctx)
		}
	}
}

// RecoveryToError recovers without capturing or printing a stack.
func RecoveryToError() Middleware {
	return Recovery(WithStackTrace(false))
}
