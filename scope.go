// Scope is the cleanup engine: an ordered stack of registered actions with
// a three-state lifecycle (open, closing, closed). Registration is valid
// only while open; Close walks the stack last-registered-first, invoking
// exit entries unconditionally, error entries only when a cause is in
// flight, and resource releases with the cause forwarded.
package unwind

import (
	"context"
	"errors"
	"sync"
	"time"
)

type scopeState int

const (
	stateOpen scopeState = iota
	stateClosing
	stateClosed
)

// entry is one registered cleanup action. The run closure receives the
// teardown cause (nil on clean completion); kind decides whether it is
// invoked at all.
type entry struct {
	name         string
	kind         EntryKind
	ignoreErrors bool
	run          func(ctx context.Context, cause error) error
}

func (e *entry) info() EntryInfo {
	return EntryInfo{Name: e.name, Kind: e.kind}
}

// Scope manages an ordered stack of cleanup actions for one unit of work.
//
// A Scope is designed for a single owning call stack. Its methods are
// mutex-guarded so concurrent misuse fails cleanly rather than corrupting
// the stack, but sharing a Scope across goroutines is not supported.
// Create one via [New]; finalize with [Scope.Close].
type Scope struct {
	ctx context.Context
	cfg config

	mu      sync.Mutex
	state   scopeState
	entries []*entry

	closeOnce sync.Once
	closeErr  error
}

// New creates an open [Scope]. The context is retained and forwarded to
// adopted resources' acquire and release steps; the engine itself does not
// watch it for cancellation.
func New(ctx context.Context, opts ...Option) *Scope {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Scope{
		ctx: ctx,
		cfg: cfg,
	}
}

// OnExit registers fn to run unconditionally at teardown. Values fn needs
// at execution time should be captured by its closure at the call site;
// they are not re-evaluated later.
//
// Returns [ErrClosed] if teardown has already begun.
func (s *Scope) OnExit(fn func() error, opts ...EntryOption) error {
	return s.register(KindExit, fn, opts)
}

// OnError registers fn to run at teardown only if the scope is closing
// because of an error. On clean completion the entry is discarded without
// being called.
//
// Returns [ErrClosed] if teardown has already begun.
func (s *Scope) OnError(fn func() error, opts ...EntryOption) error {
	return s.register(KindError, fn, opts)
}

func (s *Scope) register(kind EntryKind, fn func() error, opts []EntryOption) error {
	ec := entryConfig{}
	for _, opt := range opts {
		opt(&ec)
	}

	e := &entry{
		name:         ec.name,
		kind:         kind,
		ignoreErrors: ec.ignoreErrors,
		run: func(context.Context, error) error {
			return fn()
		},
	}

	return s.push(e)
}

func (s *Scope) push(e *entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return ErrClosed
	}
	s.entries = append(s.entries, e)
	return nil
}

// Close tears the scope down. cause is the error (nil for none)
// propagating out of the protected block; it decides whether error
// entries run and is forwarded to resource releases.
//
// Entries run in reverse registration order. An entry failure (error
// return or recovered panic) does not stop the unwind: unless the entry
// was registered with [IgnoreErrors], the failure is wrapped in a
// [*CleanupError] and joined into the result after cause. Close never
// masks cause: the returned error is cause itself when every entry
// succeeds, and satisfies errors.Is(err, cause) otherwise.
//
// Close is idempotent; subsequent calls return the first result.
func (s *Scope) Close(cause error) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = stateClosing
		entries := s.entries
		s.entries = nil
		s.mu.Unlock()

		var failures []error
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if e.kind == KindError && cause == nil {
				continue
			}

			start := time.Now()
			err := s.runEntry(e, cause)
			if s.cfg.onCleanup != nil {
				s.cfg.onCleanup(e.info(), err, time.Since(start))
			}

			if err != nil && !e.ignoreErrors {
				failures = append(failures, &CleanupError{Name: e.name, Err: err})
			}
		}

		s.mu.Lock()
		s.state = stateClosed
		s.mu.Unlock()

		if len(failures) == 0 {
			s.closeErr = cause
			return
		}
		s.closeErr = errors.Join(append([]error{cause}, failures...)...)
	})

	return s.closeErr
}

// runEntry invokes one entry with panic recovery.
func (s *Scope) runEntry(e *entry, cause error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return e.run(s.ctx, cause)
}

// Len returns the number of pending cleanup entries. It is zero once
// teardown has started.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Closed reports whether teardown has completed.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == stateClosed
}

// Context returns the context the scope was created with.
func (s *Scope) Context() context.Context {
	return s.ctx
}
