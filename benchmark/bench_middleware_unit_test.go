//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"context"
	"testing"
	"time"

	mw "github.com/dzonerzy/go-argbind/middleware"
)

// Minimal bench context implementing middleware.Context
type benchCtx struct {
	ctx     context.Context
	cancel  context.CancelFunc
	options *simpleOptions
}

func newBenchCtx() *benchCtx {
	ctx, cancel := context.WithCancel(context.Background())
	return &benchCtx{ctx: ctx, cancel: cancel, options: &simpleOptions{Port: 8080}}
}

func (b *benchCtx) Context() context.Context { return b.ctx }
func (b *benchCtx) Done() <-chan struct{}    { return b.ctx.Done() }
func (b *benchCtx) Cancel()                  { b.cancel() }
func (b *benchCtx) Args() []string           { return nil }
func (b *benchCtx) Options() any             { return b.options }
func (b *benchCtx) Set(_ string, _ any)      {}
func (b *benchCtx) Get(_ string) any         { return nil }

// Command name is used by middleware for messages; provide a stub
type benchCmd struct{}

func (benchCmd) Name() string           { return "bench" }
func (benchCmd) Description() string    { return "" }
func (b *benchCtx) Command() mw.Command { return benchCmd{} }

var noop = func(_ mw.Context) error { return nil }

func BenchmarkMW_SilentLogger(b *testing.B) {
	m := mw.SilentLogger()
	action := m(noop)
	ctx := newBenchCtx()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = action(ctx)
	}
}

func BenchmarkMW_Recovery_NoStack(b *testing.B) {
	m := mw.Recovery(mw.WithStackTrace(false))
	action := m(noop)
	ctx := newBenchCtx()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = action(ctx)
	}
}

func BenchmarkMW_Timeout_10ms(b *testing.B) {
	m := mw.Timeout(10 * time.Millisecond)
	action := m(noop)
	ctx := newBenchCtx()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// The action returns immediately; timeout path won't trigger
		_ = action(ctx)
	}
}

func BenchmarkMW_Validate_Options(b *testing.B) {
	m := mw.Validate(mw.Options("port", func(o *simpleOptions) error {
		if o.Port == 0 {
			return &mw.ValidationError{Field: "port", Message: "port is required"}
		}
		return nil
	}))
	action := m(noop)
	ctx := newBenchCtx()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = action(ctx)
	}
}

func BenchmarkMW_Chain_Timeout(b *testing.B) {
	chain := mw.Chain(mw.SilentLogger(), mw.Recovery(mw.WithStackTrace(false)), mw.Timeout(10*time.Millisecond))
	action := chain.Apply(noop)
	ctx := newBenchCtx()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = action(ctx)
	}
}
