package unwind

import "context"

// Run creates a [Scope], invokes fn with it, then tears the scope down.
// It returns the error from [Scope.Close] applied to fn's error, so the
// body's error always survives teardown and entry failures are joined
// after it.
//
// Run is the primary entry point for the explicit form: fn receives the
// scope as a parameter. If fn panics, teardown still runs with a
// [*PanicError] cause (error entries fire) and the original panic value
// is re-raised afterwards.
func Run(ctx context.Context, fn func(ctx context.Context, s *Scope) error, opts ...Option) (err error) {
	s := New(ctx, opts...)

	defer func() {
		if r := recover(); r != nil {
			// Teardown runs with the panic as the in-flight error;
			// the panic itself wins over any entry failure.
			_ = s.Close(newPanicError(r))
			panic(r)
		}
		err = s.Close(err)
	}()

	return fn(ctx, s)
}

// RunResult is [Run] for functions that produce a value. On success the
// value passes through unchanged; teardown and error propagation follow
// the Run contract.
func RunResult[T any](ctx context.Context, fn func(ctx context.Context, s *Scope) (T, error), opts ...Option) (v T, err error) {
	err = Run(ctx, func(ctx context.Context, s *Scope) error {
		var ferr error
		v, ferr = fn(ctx, s)
		return ferr
	}, opts...)
	return v, err
}

// RunContext creates a [Scope], installs it in the derived context via
// [WithScope], and invokes fn with that context. This is the implicit
// form: fn and its callees register cleanups through the free [OnExit]
// and [OnError] helpers instead of holding a scope parameter.
//
// The scope exists only in the derived context, so concurrent RunContext
// calls are fully isolated and nothing leaks past the call. Teardown and
// error propagation follow the [Run] contract.
func RunContext(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	return Run(ctx, func(ctx context.Context, s *Scope) error {
		return fn(WithScope(ctx, s))
	}, opts...)
}

// RunContextResult is [RunContext] for functions that produce a value.
func RunContextResult[T any](ctx context.Context, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	return RunResult(ctx, func(ctx context.Context, s *Scope) (T, error) {
		return fn(WithScope(ctx, s))
	}, opts...)
}

// Scoped wraps fn so every call runs inside a fresh [Scope] passed as a
// parameter. The returned function is a plain func(ctx) error, handy as a
// handler or callback:
//
//	handler := unwind.Scoped(func(ctx context.Context, s *unwind.Scope) error {
//	    ...
//	})
//	err := handler(ctx)
func Scoped(fn func(ctx context.Context, s *Scope) error, opts ...Option) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return Run(ctx, fn, opts...)
	}
}

// ScopedContext wraps fn so every call runs with a fresh [Scope]
// installed in its context. The implicit counterpart of [Scoped].
func ScopedContext(fn func(ctx context.Context) error, opts ...Option) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return RunContext(ctx, fn, opts...)
	}
}
