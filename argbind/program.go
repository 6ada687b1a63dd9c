package argbind

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dzonerzy/go-argbind/middleware"
	"github.com/dzonerzy/go-argbind/parse"
)

// Run parses args and invokes the selected handler.
func (a *App[O]) Run(args []string) error {
	return a.RunContext(context.Background(), args)
}

// RunContext is Run with a context. ctx is only passed on to the handler;
// parsing never blocks.
//
// Usage errors come back as *CLIError carrying suggestions; IsUsage and
// errors.As still find the underlying *parse.UsageError. When help was
// requested the help content is written and ErrHelpShown is returned.
func (a *App[O]) RunContext(ctx context.Context, args []string) error {
	out, err := a.prepare(args)
	if err != nil {
		return err
	}
	return a.execute(ctx, out, args)
}

// prepare parses args. When help was requested it writes the help and
// returns ErrHelpShown.
func (a *App[O]) prepare(args []string) (*outcome, error) {
	out, err := a.aggregate(args)
	if err != nil {
		return nil, a.ErrorHandler().process(err, a.scope(out))
	}

	if out.result.Has(parse.ResultHelp) {
		lines, err := helpContent(out.content)
		if err != nil {
			return nil, err
		}
		if err := a.writer().WriteContent(lines); err != nil {
			return nil, fmt.Errorf("writing help: %w", err)
		}
		return nil, ErrHelpShown
	}

	return out, nil
}

// execute invokes the handler bound in out through the middleware chain.
func (a *App[O]) execute(ctx context.Context, out *outcome, args []string) error {
	handler, err := out.bind()
	if err != nil {
		return err
	}

	inv := newContext(ctx, args, out, a.IO())
	defer inv.Cancel()

	chain := a.middleware.Use(out.selected.middleware...)
	action := chain.Apply(func(mctx middleware.Context) error {
		return handler(mctx.Context())
	})

	err = action(inv)
	if exit := inv.exitRequest(); exit != nil {
		return exit
	}
	return err
}

// Task is a handler started with Start.
type Task struct {
	group *errgroup.Group
}

// Wait blocks until the handler returned and reports its error.
func (t *Task) Wait() error {
	return t.group.Wait()
}

// Start parses args synchronously and runs the handler on its own
// goroutine. Parse errors and help are reported by Wait without starting
// the handler. The handler's context is canceled when ctx is.
func (a *App[O]) Start(ctx context.Context, args []string) *Task {
	group, gctx := errgroup.WithContext(ctx)
	task := &Task{group: group}

	out, err := a.prepare(args)
	if err != nil {
		group.Go(func() error { return err })
		return task
	}

	group.Go(func() error { return a.execute(gctx, out, args) })
	return task
}

// ShowHelp writes the help of the root, or of command when it is not
// empty, as if the root help option had been given.
func (a *App[O]) ShowHelp(command string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	form, err := a.helpForm()
	if err != nil {
		return err
	}

	args := []string{form}
	if command = strings.TrimSpace(command); command != "" {
		args = []string{command, form}
	}

	if err := a.Run(args); !errors.Is(err, ErrHelpShown) {
		return err
	}
	return nil
}

// RunAndGetExitCode runs the app with the process arguments, prints any
// error and returns the mapped exit code according to ExitCodes(). Useful
// for embedding in your own main() without os.Exit.
func (a *App[O]) RunAndGetExitCode() int {
	err := a.Run(os.Args[1:])
	a.report(err)
	return a.ExitCodes().Resolve(err)
}

// RunAndExit executes the app and terminates the process with the mapped
// exit code. Equivalent to os.Exit(a.RunAndGetExitCode()).
func (a *App[O]) RunAndExit() {
	os.Exit(a.RunAndGetExitCode())
}

// report prints err at error level with suggestions below it.
func (a *App[O]) report(err error) {
	if err == nil || errors.Is(err, ErrHelpShown) {
		return
	}
	var exit *ExitError
	if errors.As(err, &exit) && exit.Err == nil {
		return
	}

	cliErr := describe(err)
	a.Logger().Error("%s", cliErr.Message)
	for _, suggestion := range cliErr.Suggestions {
		fmt.Fprintf(a.IO().Err(), "  %s\n", suggestion)
	}
}
