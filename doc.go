// Package unwind provides deterministic scoped cleanup for Go.
//
// A [Scope] collects cleanup actions registered during a unit of work and
// runs them in reverse registration order when the unit of work ends,
// distinguishing actions that always run from actions that run only when
// an error occurred.
//
// # Scopes
//
// Create a [Scope] with [New] and finalize it with [Scope.Close], passing
// the error (if any) propagating out of the protected block:
//
//	s := unwind.New(ctx)
//	s.OnExit(func() error { return tmp.Remove() })
//	s.OnError(func() error { return rollback(tx) })
//	err := work()
//	err = s.Close(err)
//
// Exit actions run on every teardown. Error actions run only when Close
// receives a non-nil cause; on clean completion they are discarded without
// being called. All entries run last-registered-first, regardless of kind.
//
// # Running Functions in a Scope
//
// [Run] is the primary entry point: it creates a scope, invokes the
// function with it, and tears the scope down when the function returns
// or panics. No explicit Close is needed:
//
//	err := unwind.Run(ctx, func(ctx context.Context, s *unwind.Scope) error {
//	    f, err := unwind.Add(s, openFile(path))
//	    if err != nil {
//	        return err
//	    }
//	    return process(f)
//	})
//
// [RunResult] is the generic variant for functions that produce a value.
// [Scoped] wraps a function once and returns a plain func(ctx) error for
// reuse as a handler or callback.
//
// # Implicit Scopes
//
// [RunContext] installs the fresh scope in the derived context instead of
// passing it as a parameter. Code anywhere below the call registers
// cleanups through the free helpers [OnExit] and [OnError], which resolve
// the current scope via [FromContext]:
//
//	err := unwind.RunContext(ctx, func(ctx context.Context) error {
//	    if err := unwind.OnError(ctx, func() error { return rollback(tx) }); err != nil {
//	        return err
//	    }
//	    return work(ctx)
//	})
//
// The scope travels with the context, so concurrent calls never observe
// each other's scope and nothing leaks past the call.
//
// # Adopting Resources
//
// [Add] adopts a [Resource]: the acquire step runs immediately and its
// value is handed back; the release step is registered for teardown and
// receives the cause, so an erroring teardown informs the release exactly
// as an acquire/release pair expects. [AddCloser] adopts an already-open
// [io.Closer].
//
// # Error Policy
//
// Close never masks the primary cause. Entry failures (error returns and
// recovered panics) are wrapped in [*CleanupError] for attribution and
// joined after the cause via [errors.Join], so errors.Is against the
// cause always holds. An entry registered with [IgnoreErrors] has its own
// failure swallowed instead; unwinding continues past failed entries
// either way. Use [IsCleanupError], [CauseOf], and [AllCleanupErrors] to
// inspect teardown errors.
//
// # Observability
//
// [WithOnCleanup] registers a hook invoked after each entry runs during
// teardown, receiving the [EntryInfo], the entry's error, and its
// duration. [Scope.Len] reports pending entries.
package unwind
