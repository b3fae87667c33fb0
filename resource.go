package unwind

import (
	"context"
	"io"
)

// Resource is an acquire/release pair whose release can be delegated to a
// [Scope] via [Add]. Release receives the teardown cause (nil on clean
// completion), so releases that behave differently under error — rollback
// versus commit, keep-versus-delete — can tell the two apart.
type Resource[T any] interface {
	Acquire(ctx context.Context) (T, error)
	Release(ctx context.Context, cause error) error
}

type funcResource[T any] struct {
	acquire func(ctx context.Context) (T, error)
	release func(ctx context.Context, cause error) error
}

func (r funcResource[T]) Acquire(ctx context.Context) (T, error) {
	return r.acquire(ctx)
}

func (r funcResource[T]) Release(ctx context.Context, cause error) error {
	if r.release == nil {
		return nil
	}
	return r.release(ctx, cause)
}

// ResourceOf builds a [Resource] from an acquire and a release function.
// release may be nil for resources with nothing to tear down.
func ResourceOf[T any](
	acquire func(ctx context.Context) (T, error),
	release func(ctx context.Context, cause error) error,
) Resource[T] {
	return funcResource[T]{acquire: acquire, release: release}
}

// Add adopts r into the scope: the acquire step runs immediately with the
// scope's context and its value is returned to the caller; the release
// step is registered to run at teardown, in the same reverse-order unwind
// as every other entry, with the teardown cause forwarded.
//
// If the acquire step fails, nothing is registered and its error is
// returned. Returns [ErrClosed] if teardown has already begun; in that
// case the acquire step does not run.
func Add[T any](s *Scope, r Resource[T], opts ...EntryOption) (T, error) {
	var zero T

	ec := entryConfig{}
	for _, opt := range opts {
		opt(&ec)
	}

	s.mu.Lock()
	open := s.state == stateOpen
	s.mu.Unlock()
	if !open {
		return zero, ErrClosed
	}

	v, err := r.Acquire(s.ctx)
	if err != nil {
		return zero, err
	}

	e := &entry{
		name:         ec.name,
		kind:         KindResource,
		ignoreErrors: ec.ignoreErrors,
		run:          r.Release,
	}
	if err := s.push(e); err != nil {
		// Closed between the acquire and the push: release immediately
		// rather than leak, and surface the registration failure.
		rerr := r.Release(s.ctx, nil)
		if rerr != nil {
			return zero, &CleanupError{Name: ec.name, Err: rerr}
		}
		return zero, err
	}

	return v, nil
}

// AddCloser adopts an already-acquired [io.Closer]: its Close method is
// registered as an unconditional exit entry.
func AddCloser(s *Scope, c io.Closer, opts ...EntryOption) error {
	return s.OnExit(c.Close, opts...)
}
