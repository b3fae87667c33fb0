package unwind

import "errors"

// ErrClosed is returned by registration methods once teardown has begun.
// A scope accepts no new entries while closing or after it has closed.
var ErrClosed = errors.New("unwind: scope is closed")

// ErrNoScope is returned by the free helpers [OnExit] and [OnError] when
// the context carries no scope.
var ErrNoScope = errors.New("unwind: no scope in context")
