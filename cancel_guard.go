package grpcweb

import (
	"context"
	"sync"
	"time"
)

// CancelGuard binds the lifetime of an in-flight HTTP call to its
// consumer. It owns the abort token exclusively: there are no weak
// references to it, so apart from cancellation of the parent context
// only the guard itself (Close, Abort or its timeout) aborts the call
// it guards, and closing it always does.
type CancelGuard struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelCauseFunc
	timer  *time.Timer
}

func newCancelGuard(parent context.Context) *CancelGuard {
	ctx, cancel := context.WithCancelCause(parent)
	return &CancelGuard{ctx: ctx, cancel: cancel}
}

// Context is the request-scoped context the guard controls. Pass it
// to the outbound http.Request so an abort tears down the call.
func (g *CancelGuard) Context() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctx
}

// SetTimeout schedules a one-shot abort after d, with reason
// ErrTimedOut. Calling it again before expiry cancels the previous
// timer, matching the original "replace on re-call" behavior.
func (g *CancelGuard) SetTimeout(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(d, func() {
		g.cancel(ErrTimedOut)
	})
}

// Abort fires the guard's cancellation with reason, or ErrAborted if
// reason is nil. Idempotent: a second call has no further effect.
func (g *CancelGuard) Abort(reason error) {
	if reason == nil {
		reason = ErrAborted
	}
	g.cancel(reason)
}

// Close cancels any outstanding timer and aborts the call. It is the
// Go equivalent of the guard's Drop: Go has no destructors, so a
// ResponseBody's consumer must call Close (directly, or via
// ResponseBody.Close) to release the call early.
func (g *CancelGuard) Close() error {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.mu.Unlock()
	g.cancel(ErrAborted)
	return nil
}

// Cause returns the reason the guard's context was cancelled, if any.
func (g *CancelGuard) Cause() error {
	return context.Cause(g.Context())
}
