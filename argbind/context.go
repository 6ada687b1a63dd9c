package argbind

import (
	"context"
	stdio "io"
	"sync"

	bindio "github.com/dzonerzy/go-argbind/io"
	"github.com/dzonerzy/go-argbind/middleware"
)

type contextKey struct{}

// Context is the invocation of a handler. It implements middleware.Context;
// handlers registered with ActionContext reach it through FromContext.
type Context struct {
	ctx     context.Context
	cancel  context.CancelFunc
	args    []string
	options any
	command commandInfo
	io      *bindio.IOManager
	exit    *ExitError

	mu       sync.Mutex
	metadata map[string]any
}

var _ middleware.Context = (*Context)(nil)

func newContext(parent context.Context, args []string, out *outcome, io *bindio.IOManager) *Context {
	c := &Context{
		args:     args,
		options:  out.options,
		command:  commandInfo{name: out.selected.name, description: out.selected.description},
		io:       io,
		metadata: make(map[string]any),
	}
	ctx, cancel := context.WithCancel(parent)
	c.ctx = context.WithValue(ctx, contextKey{}, c)
	c.cancel = cancel
	return c
}

// FromContext returns the invocation ctx belongs to.
func FromContext(ctx context.Context) (*Context, bool) {
	c, ok := ctx.Value(contextKey{}).(*Context)
	return c, ok
}

// Context returns the underlying Go context for cancellation/timeouts
func (c *Context) Context() context.Context { return c.ctx }

// Done returns a channel that's closed when the invocation is canceled
func (c *Context) Done() <-chan struct{} { return c.ctx.Done() }

// Cancel cancels the invocation
func (c *Context) Cancel() { c.cancel() }

// Args returns the raw arguments of the run.
func (c *Context) Args() []string { return c.args }

// Options returns the options object of the selected runtime, a *O for a
// runtime configured with Config[O].
func (c *Context) Options() any { return c.options }

// Command describes the selected runtime.
func (c *Context) Command() middleware.Command { return c.command }

// Set stores a key-value pair in the context metadata
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = value
}

// Get retrieves a value from the context metadata
func (c *Context) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metadata[key]
}

// Exit requests the process exit code and cancels the invocation. The
// request wins over the handler's returned error.
func (c *Context) Exit(code int) {
	c.ExitWithError(nil, code)
}

// ExitWithError is like Exit and also reports err.
func (c *Context) ExitWithError(err error, code int) {
	c.mu.Lock()
	c.exit = &ExitError{Code: code, Err: err}
	c.mu.Unlock()
	c.Cancel()
}

func (c *Context) exitRequest() *ExitError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exit
}

// IO accessors
func (c *Context) IO() *bindio.IOManager { return c.io }
func (c *Context) Stdout() stdio.Writer  { return c.io.Out() }
func (c *Context) Stderr() stdio.Writer  { return c.io.Err() }
func (c *Context) Stdin() stdio.Reader   { return c.io.In() }

type commandInfo struct {
	name        string
	description string
}

func (c commandInfo) Name() string        { return c.name }
func (c commandInfo) Description() string { return c.description }
