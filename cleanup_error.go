package unwind

import (
	"errors"
	"fmt"
)

// CleanupError wraps the failure of one cleanup entry together with the
// name it was registered under. [Scope.Close] wraps every non-ignored
// entry failure in a CleanupError so callers can attribute teardown
// errors to specific entries.
type CleanupError struct {
	Name string
	Err  error
}

func (e *CleanupError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cleanup failed: %v", e.Err)
	}
	return fmt.Sprintf("cleanup %q failed: %v", e.Name, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// IsCleanupError reports whether err (or any error in its chain) is a
// [*CleanupError].
func IsCleanupError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CleanupError
	return errors.As(err, &ce)
}

// CauseOf unwraps the first [*CleanupError] in err's chain and returns
// its underlying cause. If err is not a CleanupError, it is returned
// as-is. Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var ce *CleanupError
	if errors.As(err, &ce) {
		return ce.Err
	}

	return err
}

// AllCleanupErrors recursively collects every [*CleanupError] from err's
// chain, including errors wrapped via [errors.Join]. Returns nil if none
// are found.
func AllCleanupErrors(err error) []*CleanupError {
	if err == nil {
		return nil
	}

	var out []*CleanupError
	collectCleanupErrors(err, &out)
	return out
}

func collectCleanupErrors(err error, out *[]*CleanupError) {
	switch e := err.(type) {
	case *CleanupError:
		*out = append(*out, e)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectCleanupErrors(sub, out)
		}

	case interface{ Unwrap() error }:
		collectCleanupErrors(e.Unwrap(), out)
	}
}
