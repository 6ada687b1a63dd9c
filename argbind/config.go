package argbind

import (
	"context"
	"errors"

	"github.com/dzonerzy/go-argbind/middleware"
	"github.com/dzonerzy/go-argbind/parse"
)

const rootContext = "application"

// Config is the configuration of one runtime: the root application or a
// command. Options are bound to a *O created by the options provider for
// every parse.
type Config[O any] struct {
	program     string // application name, for generated help
	name        string
	description string
	template    *parse.Template // nil for the root
	help        *parse.Template
	content     HelpContentProvider
	provider    OptionsProvider[O]
	handler     func(context.Context, *O) error
	middleware  middleware.MiddlewareChain
	commands    func() []HelpEntry // set on the root only

	binders   []binder[O]
	parsers   []parse.ArgumentParser[*O]
	forms     parse.TemplateSet
	positions int
	errs      []error
	late      []error
	built     bool
}

func newConfig[O any](program, name, description string, template *parse.Template) *Config[O] {
	return &Config[O]{program: program, name: name, description: description, template: template}
}

// Name returns the application name or the command template.
func (c *Config[O]) Name() string { return c.name }

// Description returns the description.
func (c *Config[O]) Description() string { return c.description }

// Template returns the command template, nil for the root.
func (c *Config[O]) Template() *parse.Template { return c.template }

// Describe sets the description shown in generated help.
func (c *Config[O]) Describe(description string) *Config[O] {
	c.description = description
	return c
}

// HelpOption declares the template that requests help, e.g. "-h|--help".
// Help content must be set with Help on this runtime or on the root.
func (c *Config[O]) HelpOption(template string) *Config[O] {
	if c.frozen("Help option " + template) {
		return c
	}
	if c.help != nil {
		c.fail(parse.NewConfigurationError("Help option already defined as %s.", c.help.String()))
		return c
	}
	c.help = c.register(template)
	return c
}

// Help sets the provider of the content shown when help is requested.
func (c *Config[O]) Help(provider HelpContentProvider) *Config[O] {
	c.content = provider
	return c
}

// GeneratedHelp shows help generated from the declared arguments.
func (c *Config[O]) GeneratedHelp() *Config[O] {
	return c.Help(ProviderFunc(func() ([]string, error) {
		return c.usage(), nil
	}))
}

// Options sets the provider of the options object. By default a new zero
// value is allocated for every parse.
func (c *Config[O]) Options(provider OptionsProvider[O]) *Config[O] {
	c.provider = provider
	return c
}

// Action sets the handler.
func (c *Config[O]) Action(fn func(*O) error) *Config[O] {
	if fn == nil {
		c.handler = nil
		return c
	}
	c.handler = func(_ context.Context, opts *O) error { return fn(opts) }
	return c
}

// ActionContext sets a handler that receives the invocation context. The
// context is canceled when the caller's context is, or by middleware such
// as Timeout. FromContext retrieves the invocation from it.
func (c *Config[O]) ActionContext(fn func(context.Context, *O) error) *Config[O] {
	c.handler = fn
	return c
}

// Use adds middleware around this runtime's handler. It runs inside the
// application middleware.
func (c *Config[O]) Use(mw ...middleware.Middleware) *Config[O] {
	c.middleware = c.middleware.Use(mw...)
	return c
}

// Args lists the declared arguments in declaration order.
func (c *Config[O]) Args() []ArgInfo {
	out := make([]ArgInfo, 0, len(c.binders))
	for _, b := range c.binders {
		out = append(out, b.info())
	}
	return out
}

// register parses an option template and reserves its aliases. Failures are
// recorded and reported by App.Validate.
func (c *Config[O]) register(aliases string) *parse.Template {
	template, err := parse.NewOptionTemplate(aliases)
	if err != nil {
		c.fail(err)
		return nil
	}
	if err := c.forms.Add(template); err != nil {
		c.fail(err)
		return nil
	}
	return template
}

func (c *Config[O]) fail(err error) {
	c.errs = append(c.errs, err)
}

// frozen reports whether c was already built, recording what as a late
// declaration if so.
func (c *Config[O]) frozen(what string) bool {
	if !c.built {
		return false
	}
	c.late = append(c.late, parse.NewConfigurationError(
		"%s declared for %s after the configuration was frozen.", what, c.contextName()))
	return true
}

// build turns binders into parsers once. Later calls return the same
// result.
func (c *Config[O]) build() error {
	if !c.built {
		c.built = true
		for _, b := range c.binders {
			p, err := b.build()
			if err != nil {
				c.fail(err)
				continue
			}
			if p != nil {
				c.parsers = append(c.parsers, p)
			}
		}
		if c.help != nil {
			c.parsers = append(c.parsers, parse.NewHelpParser[*O](c.help))
		}
	}
	return errors.Join(c.errs...)
}

// instance returns a new options object from the provider.
func (c *Config[O]) instance() (*O, error) {
	if c.provider == nil {
		return new(O), nil
	}
	opts, err := c.provider.Options()
	if err != nil {
		return nil, parse.NewConfigurationError("Options provider failed when asking for a %s instance.",
			parse.TypeName(parse.TypeOf[O]())).WithCause(err)
	}
	if opts == nil {
		return nil, parse.NewConfigurationError("Options provider returned nil when asking for a %s instance.",
			parse.TypeName(parse.TypeOf[O]()))
	}
	return opts, nil
}

// dispatch applies the parsers of typ to pctx.
func (c *Config[O]) dispatch(opts *O, pctx *parse.Context, typ parse.ParserType) (parse.Result, error) {
	return parse.Map(opts, c.parsers, pctx, typ)
}

func (c *Config[O]) contextName() string {
	if c.template != nil {
		return c.template.String()
	}
	return rootContext
}

// handlerFor binds the handler to opts.
func (c *Config[O]) handlerFor(opts *O) (func(context.Context) error, error) {
	if c.handler == nil {
		return nil, parse.NewConfigurationError("No client handler defined for %s.", c.contextName())
	}
	handler := c.handler
	return func(ctx context.Context) error { return handler(ctx, opts) }, nil
}
