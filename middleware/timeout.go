package middleware

import (
	"context"
	"time"
)

// Timeout fails the invocation with *TimeoutError when the handler runs
// longer than duration. The handler keeps running in its goroutine; it is
// expected to watch ctx.Done(), which is closed on timeout.
func Timeout(duration time.Duration) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx.Context(), duration)
			defer cancel()

			resultChan := make(chan error, 1)

			go func() {
				defer func() {
					if r := recover(); r != nil {
						resultChan <- &RecoveryError{
							Panic:   r,
							Command: getCommandName(ctx),
						}
					}
				}()
				resultChan <- next(ctx)
			}()

			select {
			case err := <-resultChan:
				return err
			case <-timeoutCtx.Done():
				if ctx.Context().Err() != nil {
					return context.Cause(ctx.Context())
				}
				ctx.Cancel()
				return &TimeoutError{
					Duration: duration,
					Command:  getCommandName(ctx),
				}
			case <-ctx.Done():
				return context.Canceled
			}
		}
	}
}

// TimeoutWithDefault uses the DefaultTimeout of the config.
func TimeoutWithDefault(options ...MiddlewareOption) Middleware {
	return Timeout(newConfig(options).DefaultTimeout)
}

// TimeoutPerCommand picks the timeout by runtime name, falling back to
// defaultTimeout.
func TimeoutPerCommand(commandTimeouts map[string]time.Duration, defaultTimeout time.Duration) Middleware {
	return DynamicTimeout(func(ctx Context) time.Duration {
		if timeout, ok := commandTimeouts[getCommandName(ctx)]; ok {
			return timeout
		}
		return defaultTimeout
	})
}

// DynamicTimeout computes the duration per invocation. A duration <= 0
// runs the handler without a timeout.
func DynamicTimeout(timeoutFunc func(ctx Context) time.Duration) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			duration := timeoutFunc(ctx)
			if duration <= 0 {
				return next(ctx)
			}
			return Timeout(duration)(next)(ctx)
		}
	}
}

// TimeoutFromOptions reads the duration from the options object of type O,
// e.g. a --timeout option. Invocations whose options are not an O, or whose
// duration is zero, use defaultTimeout.
func TimeoutFromOptions[O any](get func(O) time.Duration, defaultTimeout time.Duration) Middleware {
	return DynamicTimeout(func(ctx Context) time.Duration {
		if opts, ok := ctx.Options().(O); ok {
			if d := get(opts); d != 0 {
				return d
			}
		}
		return defaultTimeout
	})
}
