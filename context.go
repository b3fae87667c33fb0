package unwind

import "context"

type scopeKey struct{}

// WithScope returns a context carrying s. Callees retrieve it with
// [FromContext] or register cleanups directly via the free [OnExit] and
// [OnError] helpers. [RunContext] and [ScopedContext] call WithScope for
// you.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the [Scope] carried by ctx, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}

// OnExit registers fn on the scope carried by ctx, to run unconditionally
// at that scope's teardown. Returns [ErrNoScope] if ctx carries no scope,
// or [ErrClosed] if the scope's teardown has begun.
func OnExit(ctx context.Context, fn func() error, opts ...EntryOption) error {
	s, ok := FromContext(ctx)
	if !ok {
		return ErrNoScope
	}
	return s.OnExit(fn, opts...)
}

// OnError registers fn on the scope carried by ctx, to run at teardown
// only if an error is in flight. Returns [ErrNoScope] if ctx carries no
// scope, or [ErrClosed] if the scope's teardown has begun.
func OnError(ctx context.Context, fn func() error, opts ...EntryOption) error {
	s, ok := FromContext(ctx)
	if !ok {
		return ErrNoScope
	}
	return s.OnError(fn, opts...)
}
