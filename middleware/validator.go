package middleware

import (
	"errors"
	"fmt"
	"os"
)

// ValidatorFunc checks the invocation before the handler runs. Use it for
// rules that span several options or need runtime state, such as file
// system checks. Single-value rules belong on the option builder.
type ValidatorFunc func(ctx Context) error

// NamedValidator pairs a ValidatorFunc with the name used in errors.
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

// Custom wraps fn with a name for reporting.
func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// Validate runs validators in order before the handler and stops at the
// first failure. Errors that are not a *ValidationError are wrapped in one
// whose Field is the validator name.
//
// Example:
//
//	app.Use(middleware.Validate(
//	    middleware.Options("port_range", checkPort),
//	    middleware.File("project", func(o *BuildOptions) string { return o.Project }),
//	))
func Validate(validators ...NamedValidator) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			for _, v := range validators {
				if v.Fn == nil {
					continue
				}
				if err := v.Fn(ctx); err != nil {
					validationErr := &ValidationError{}
					if errors.As(err, &validationErr) {
						return validationErr
					}
					return &ValidationError{
						Field:   v.Name,
						Message: "validation failed",
						Cause:   err,
					}
				}
			}

			return next(ctx)
		}
	}
}

// Options validates the options object when it is an O. Invocations whose
// options have another type are skipped, so one middleware can serve an
// application with several options types.
func Options[O any](name string, fn func(O) error) NamedValidator {
	return Custom(name, func(ctx Context) error {
		opts, ok := ctx.Options().(O)
		if !ok {
			return nil
		}
		return fn(opts)
	})
}

// File ensures the path read from the options names an existing regular
// file. Empty paths are not checked.
func File[O any](name string, path func(O) string) NamedValidator {
	return pathValidator(name, path, validateFileExists, "file")
}

// Dir ensures the path read from the options names an existing directory.
// Empty paths are not checked.
func Dir[O any](name string, path func(O) string) NamedValidator {
	return pathValidator(name, path, validateDirectoryExists, "directory")
}

func pathValidator[O any](name string, path func(O) string, check func(string) error, kind string) NamedValidator {
	return Options(name, func(opts O) error {
		p := path(opts)
		if p == "" {
			return nil
		}
		if err := check(p); err != nil {
			return &ValidationError{
				Field:   name,
				Value:   p,
				Message: fmt.Sprintf("%s validation failed for '%s'", kind, name),
				Cause:   err,
			}
		}
		return nil
	})
}

func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func validateDirectoryExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
