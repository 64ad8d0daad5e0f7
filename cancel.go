package reflow

import "context"

// CancelSignal is a cooperative stop signal polled between pages. Cancelled
// must be safe to call repeatedly and must have no side effects; once it
// reports true it should keep reporting true.
type CancelSignal interface {
	Cancelled() bool
}

// CancelFunc adapts a function to the CancelSignal interface.
type CancelFunc func() bool

// Cancelled calls f.
func (f CancelFunc) Cancelled() bool {
	return f()
}

// ContextSignal adapts a context.Context to a CancelSignal: the signal is
// set exactly when the context is done.
func ContextSignal(ctx context.Context) CancelSignal {
	return ctxSignal{ctx: ctx}
}

type ctxSignal struct {
	ctx context.Context
}

func (s ctxSignal) Cancelled() bool {
	return s.ctx.Err() != nil
}
