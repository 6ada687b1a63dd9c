package argbind

import (
	"context"

	"github.com/dzonerzy/go-argbind/middleware"
	"github.com/dzonerzy/go-argbind/parse"
)

// runtimeInfo is the part of a runtime's configuration that does not
// depend on its options type.
type runtimeInfo struct {
	name        string
	description string
	template    *parse.Template
	help        *parse.Template
	content     HelpContentProvider
	middleware  middleware.MiddlewareChain
	forms       []string
}

func (c *Config[O]) runtimeInfo() runtimeInfo {
	return runtimeInfo{
		name:        c.name,
		description: c.description,
		template:    c.template,
		help:        c.help,
		content:     c.content,
		middleware:  c.middleware,
		forms:       c.forms.Forms(),
	}
}

// runtime is one independently configured program with its own options
// type and handler.
type runtime interface {
	info() runtimeInfo
	build() error
	// late lists declarations made after build.
	late() []error
	// process maps pctx onto a new options object.
	process(pctx *parse.Context) (*outcome, error)
}

// outcome is the result of running the dispatch passes against a context.
type outcome struct {
	selected runtimeInfo
	result   parse.Result
	options  any
	// content is the help provider of the first active runtime that has
	// one, command before root.
	content HelpContentProvider
	// forms are the option aliases of every active runtime.
	forms []string
	bind  func() (func(context.Context) error, error)
}

type rootRuntime[O any] struct {
	cfg *Config[O]
}

func (r *rootRuntime[O]) info() runtimeInfo { return r.cfg.runtimeInfo() }
func (r *rootRuntime[O]) build() error      { return r.cfg.build() }
func (r *rootRuntime[O]) late() []error     { return r.cfg.late }

func (r *rootRuntime[O]) process(pctx *parse.Context) (*outcome, error) {
	out := &outcome{
		selected: r.cfg.runtimeInfo(),
		content:  r.cfg.content,
		forms:    r.cfg.forms.Forms(),
	}

	opts, err := r.cfg.instance()
	if err != nil {
		return out, err
	}
	out.options = opts

	for _, typ := range parse.DispatchOrder {
		if !pctx.Reset() {
			break
		}
		result, err := r.cfg.dispatch(opts, pctx, typ)
		out.result |= result
		if err != nil {
			return out, err
		}
	}

	out.bind = func() (func(context.Context) error, error) { return r.cfg.handlerFor(opts) }
	return out, nil
}

// commandRuntime runs a command together with the root. Root parsers write
// into the part of the command options returned by project.
type commandRuntime[C, O any] struct {
	cfg     *Config[C]
	root    *Config[O]
	project func(*C) *O
}

func (r *commandRuntime[C, O]) info() runtimeInfo { return r.cfg.runtimeInfo() }
func (r *commandRuntime[C, O]) build() error      { return r.cfg.build() }
func (r *commandRuntime[C, O]) late() []error     { return r.cfg.late }

func (r *commandRuntime[C, O]) process(pctx *parse.Context) (*outcome, error) {
	out := &outcome{
		selected: r.cfg.runtimeInfo(),
		content:  r.cfg.content,
		forms:    append(r.cfg.forms.Forms(), r.root.forms.Forms()...),
	}
	if out.content == nil {
		out.content = r.root.content
	}

	opts, err := r.cfg.instance()
	if err != nil {
		return out, err
	}
	out.options = opts

	rootOpts := r.project(opts)
	if rootOpts == nil {
		return out, parse.NewConfigurationError("Command %s: options projection returned nil.", r.cfg.contextName())
	}

	for _, typ := range parse.DispatchOrder {
		if !pctx.Reset() {
			break
		}
		result, err := r.cfg.dispatch(opts, pctx, typ)
		out.result |= result
		if err != nil {
			return out, err
		}

		if !pctx.Reset() {
			break
		}
		result, err = r.root.dispatch(rootOpts, pctx, typ)
		out.result |= result
		if err != nil {
			return out, err
		}
	}

	out.bind = func() (func(context.Context) error, error) { return r.cfg.handlerFor(opts) }
	return out, nil
}
