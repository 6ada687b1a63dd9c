package argbind

import (
	"errors"
	"reflect"

	"github.com/dzonerzy/go-argbind/middleware"
	"github.com/dzonerzy/go-argbind/parse"
)

// ExitError requests a specific exit code. Handlers return it, directly or
// wrapped, to override the mapping done by ExitCodeManager.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit returns an *ExitError carrying code and err.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByName map[string]int
	codesByType map[reflect.Type]int
	codesByCLI  map[ErrorType]int
	defaults    ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByName: make(map[string]int),
		codesByType: make(map[reflect.Type]int),
		codesByCLI:  make(map[ErrorType]int),
		defaults:    defaultExitDefaults(),
	}
	m.prewire()
	return m
}

func (e *ExitCodeManager) prewire() {
	e.codesByCLI[ErrorTypeUsage] = e.defaults.MisusageError
	e.codesByCLI[ErrorTypeMissingValue] = e.defaults.MisusageError
	e.codesByCLI[ErrorTypeUnknownArgument] = e.defaults.MisusageError
	e.codesByCLI[ErrorTypeConversion] = e.defaults.MisusageError
	e.codesByCLI[ErrorTypeValidation] = e.defaults.ValidationError
	e.codesByCLI[ErrorTypeConfiguration] = e.defaults.GeneralError
	e.codesByCLI[ErrorTypeHandler] = e.defaults.GeneralError

	e.codesByType[reflect.TypeOf(&middleware.TimeoutError{})] = e.defaults.GeneralError
	e.codesByType[reflect.TypeOf(&middleware.ValidationError{})] = e.defaults.ValidationError
	e.codesByType[reflect.TypeOf(&middleware.RecoveryError{})] = e.defaults.GeneralError
}

// Define registers a named exit-code mapping. The name is for documentation
// and lookup through Code; it does not affect resolution.
func (e *ExitCodeManager) Define(name string, code int) *ExitCodeManager {
	e.codesByName[name] = code
	return e
}

// Code returns a code registered with Define.
func (e *ExitCodeManager) Code(name string) (int, bool) {
	code, ok := e.codesByName[name]
	return code, ok
}

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. A matching type takes precedence over the defaults but is secondary
// to an ExitError and to category mappings.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByType[reflect.TypeOf(err)] = code
	return e
}

// DefineCLI overrides the exit code of an error category, e.g. validation.
func (e *ExitCodeManager) DefineCLI(typ ErrorType, code int) *ExitCodeManager {
	e.codesByCLI[typ] = code
	return e
}

// Default replaces the default codes. Category mappings that still point at
// the old defaults are rewired to the new ones.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	old := e.defaults
	e.defaults = d
	for typ, code := range e.codesByCLI {
		switch code {
		case old.MisusageError:
			e.codesByCLI[typ] = d.MisusageError
		case old.ValidationError:
			e.codesByCLI[typ] = d.ValidationError
		case old.GeneralError:
			e.codesByCLI[typ] = d.GeneralError
		}
	}
	return e
}

// Resolve converts an error to an exit code. Precedence:
//  1. ExitError (requested code)
//  2. error category (CLIError, UsageError, ConfigurationError)
//  3. concrete error type (DefineError, middleware errors)
//  4. defaults
//
// ErrHelpShown counts as success.
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil || errors.Is(err, ErrHelpShown) {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if typ, ok := category(err); ok {
		if code, found := e.codesByCLI[typ]; found {
			return code
		}
	}

	for t, code := range e.codesByType {
		if errors.As(err, reflect.New(t).Interface()) {
			return code
		}
	}

	return e.defaults.GeneralError
}

func category(err error) (ErrorType, bool) {
	var cli *CLIError
	if errors.As(err, &cli) {
		return cli.Type, true
	}
	var usage *parse.UsageError
	if errors.As(err, &usage) {
		return usage.Type, true
	}
	if parse.IsConfiguration(err) {
		return ErrorTypeConfiguration, true
	}
	return "", false
}
