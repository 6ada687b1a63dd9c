// Package argbind binds command line arguments to typed options objects and
// dispatches them to handlers.
//
// An App has a root runtime and any number of commands. Each runtime
// declares options, switches and positional arguments with Option, Switch
// and Positional, a handler with Action, and optionally a help option.
// Parsing selects a command by its first argument, runs the help, option
// and positional passes over the command and the root, rejects leftover
// tokens and invokes the selected handler.
package argbind

import (
	"errors"
	"sync"

	bindio "github.com/dzonerzy/go-argbind/io"
	"github.com/dzonerzy/go-argbind/middleware"
	"github.com/dzonerzy/go-argbind/parse"
)

// App is a command line application whose root options have type O.
type App[O any] struct {
	name        string
	description string

	root     *Config[O]
	commands []runtime
	errs     []error

	middleware   middleware.MiddlewareChain
	errorHandler *ErrorHandler
	helpWriter   HelpWriter
	ioManager    *bindio.IOManager
	logger       *bindio.Logger
	exitCodes    *ExitCodeManager
	debug        bool

	validateOnce sync.Once
	validateErr  error
	late         []error
}

// New creates an application.
func New[O any](name, description string) *App[O] {
	a := &App[O]{
		name:         name,
		description:  description,
		errorHandler: NewErrorHandler(),
		ioManager:    bindio.New(),
		exitCodes:    newExitCodeManager(),
	}
	a.logger = bindio.NewLogger(a.ioManager)
	a.root = newConfig[O](name, name, description, nil)
	a.root.commands = a.commandEntries
	return a
}

// Name returns the application name.
func (a *App[O]) Name() string { return a.name }

// Root returns the root configuration.
func (a *App[O]) Root() *Config[O] { return a.root }

// Command adds a command sharing the root options type. The template lists
// the command's names, e.g. "build|b".
func (a *App[O]) Command(template string) *Config[O] {
	return Command(a, template, func(opts *O) *O { return opts })
}

// Command adds a command with its own options type C. project returns the
// root options embedded in a *C, so root options and switches remain usable
// after the command name.
func Command[C, O any](app *App[O], template string, project func(*C) *O) *Config[C] {
	tmpl, err := parse.NewCommandTemplate(template)
	cfg := newConfig[C](app.name, template, "", tmpl)
	if app.root.built {
		app.late = append(app.late, parse.NewConfigurationError(
			"Command %s declared after the configuration was frozen.", template))
		return cfg
	}
	if err != nil {
		app.fail(err)
		return cfg
	}
	if project == nil {
		app.fail(parse.NewConfigurationError("Command %s: no options projection defined.", tmpl.String()))
		return cfg
	}

	for _, token := range tmpl.Tokens() {
		for _, other := range app.commands {
			if other.info().template.Contains(token) {
				app.fail(parse.NewConfigurationError("%q is already in use by another command.", token.DistinguishedForm()))
				return cfg
			}
		}
	}

	app.commands = append(app.commands, &commandRuntime[C, O]{cfg: cfg, root: app.root, project: project})
	return cfg
}

func (a *App[O]) fail(err error) {
	a.errs = append(a.errs, err)
}

// Use adds middleware around every handler.
func (a *App[O]) Use(mw ...middleware.Middleware) *App[O] {
	a.middleware = a.middleware.Use(mw...)
	return a
}

// Debug logs parse decisions at debug level.
func (a *App[O]) Debug(enabled bool) *App[O] {
	a.debug = enabled
	if enabled {
		a.Logger().WithLevel(bindio.LevelDebug)
	}
	return a
}

// IO returns the IOManager used for help and error output.
func (a *App[O]) IO() *bindio.IOManager { return a.ioManager }

// Logger returns the application logger.
func (a *App[O]) Logger() *bindio.Logger { return a.logger }

// HelpWriter replaces the help writer. The default is a ConsoleHelpWriter
// over IO().
func (a *App[O]) HelpWriter(w HelpWriter) *App[O] {
	a.helpWriter = w
	return a
}

func (a *App[O]) writer() HelpWriter {
	if a.helpWriter == nil {
		return NewConsoleHelpWriter(a.ioManager)
	}
	return a.helpWriter
}

// ErrorHandler returns the handler that adds suggestions to usage errors.
func (a *App[O]) ErrorHandler() *ErrorHandler { return a.errorHandler }

// ExitCodes returns the exit-code manager. Resolution precedence is:
// ExitError > error category (DefineCLI) > concrete error type
// (DefineError) > defaults.
func (a *App[O]) ExitCodes() *ExitCodeManager { return a.exitCodes }

func (a *App[O]) runtimes() []runtime {
	return append([]runtime{&rootRuntime[O]{cfg: a.root}}, a.commands...)
}

// Validate builds every runtime and reports configuration mistakes as
// joined ConfigurationErrors. The configuration is frozen afterwards:
// arguments and commands declared later are reported as errors by every
// following call. Every run entry point calls it, and concurrent runs
// build the runtimes once.
func (a *App[O]) Validate() error {
	a.validateOnce.Do(func() { a.validateErr = a.validate() })

	late := append([]error(nil), a.late...)
	for _, r := range a.runtimes() {
		late = append(late, r.late()...)
	}
	if len(late) == 0 {
		return a.validateErr
	}
	return errors.Join(append([]error{a.validateErr}, late...)...)
}

func (a *App[O]) validate() error {
	errs := append([]error(nil), a.errs...)
	rootInfo := a.root.runtimeInfo()
	for _, r := range a.runtimes() {
		if err := r.build(); err != nil {
			errs = append(errs, err)
		}

		info := r.info()
		if info.help != nil && info.content == nil && rootInfo.content == nil {
			errs = append(errs, parse.NewConfigurationError(
				"Help option %s is defined for %s, but no help content provider is configured.",
				info.help.String(), contextOf(info)))
		}
	}

	return errors.Join(errs...)
}

func contextOf(info runtimeInfo) string {
	if info.template != nil {
		return info.template.String()
	}
	return rootContext
}

// commandEntries lists the commands for generated help.
func (a *App[O]) commandEntries() []HelpEntry {
	entries := make([]HelpEntry, 0, len(a.commands))
	for _, c := range a.commands {
		info := c.info()
		entries = append(entries, HelpEntry{Name: info.template.String(), Text: info.description})
	}
	return entries
}

func (a *App[O]) commandNames() []string {
	var names []string
	for _, c := range a.commands {
		for _, token := range c.info().template.Tokens() {
			names = append(names, token.Value)
		}
	}
	return names
}

func (a *App[O]) debugf(format string, args ...any) {
	if a.debug {
		a.Logger().Debug(format, args...)
	}
}

// aggregate parses args. The returned outcome is nil only when the
// configuration is invalid or args cannot be tokenized.
func (a *App[O]) aggregate(args []string) (*outcome, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	pctx, err := parse.NewContext(args)
	if err != nil {
		return nil, err
	}

	selected := runtime(&rootRuntime[O]{cfg: a.root})
	command := false
	for _, c := range a.commands {
		if !pctx.Reset() {
			break
		}
		if pctx.TryTakeTemplateAt(c.info().template, 0) {
			selected = c
			command = true
			break
		}
	}
	a.debugf("selected runtime %s", contextOf(selected.info()))

	out, err := selected.process(pctx)
	if command {
		out.result |= parse.ResultCommand
	}
	if err != nil {
		return out, err
	}

	if out.result.Has(parse.ResultHelp) {
		a.debugf("help requested for %s", contextOf(out.selected))
		if out.content == nil {
			return out, parse.NewConfigurationError("Help was invoked by a matched option, but no help content provider configured.")
		}
		return out, nil
	}

	pctx.Reset()
	if pctx.Ready() {
		a.debugf("unmatched tokens %v", pctx.Tokens())
		return out, parse.ErrUnmatchedToken(pctx.Current())
	}
	return out, nil
}

// scope lists suggestion candidates for an error raised while parsing.
func (a *App[O]) scope(out *outcome) suggestionScope {
	if out == nil {
		return suggestionScope{forms: a.root.forms.Forms(), commands: a.commandNames()}
	}
	s := suggestionScope{forms: out.forms}
	if out.selected.template == nil {
		s.commands = a.commandNames()
	}
	return s
}

// Parse maps args onto a new options object of the selected runtime and
// returns it without invoking a handler: a *O for the root, the command's
// options for a command. When help was requested it returns the options
// and ErrHelpRequested.
func (a *App[O]) Parse(args []string) (any, error) {
	out, err := a.aggregate(args)
	if err != nil {
		return nil, err
	}
	if out.result.Has(parse.ResultHelp) {
		return out.options, ErrHelpRequested
	}
	return out.options, nil
}

// ParseAs is Parse for callers that know which runtime args select.
func ParseAs[T, O any](app *App[O], args []string) (*T, error) {
	options, err := app.Parse(args)
	if options == nil {
		return nil, err
	}
	typed, ok := options.(*T)
	if !ok {
		return nil, parse.NewConfigurationError("Parsed options are %T, not %s.", options, parse.TypeName(parse.TypeOf[*T]()))
	}
	return typed, err
}

// helpForm returns the first alias of the root help option, e.g. "--help".
func (a *App[O]) helpForm() (string, error) {
	if a.root.help == nil {
		return "", parse.NewConfigurationError("Help was programmatically invoked but no help option has been defined.")
	}
	return a.root.help.First().DistinguishedForm(), nil
}
