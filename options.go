package unwind

import "time"

// EntryKind identifies what a registered cleanup entry is.
type EntryKind int

const (
	// KindExit entries run on every teardown.
	KindExit EntryKind = iota

	// KindError entries run only when teardown has a non-nil cause.
	KindError

	// KindResource entries are the release steps of adopted resources.
	// They run on every teardown and receive the cause.
	KindResource
)

func (k EntryKind) String() string {
	switch k {
	case KindExit:
		return "exit"
	case KindError:
		return "error"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// EntryInfo provides metadata about a cleanup entry.
// It is passed to the hook registered via [WithOnCleanup].
type EntryInfo struct {
	Name string
	Kind EntryKind
}

type config struct {
	onCleanup func(EntryInfo, error, time.Duration)
}

// Option configures a [Scope].
type Option func(*config)

func defaultConfig() config {
	return config{}
}

// WithOnCleanup registers a hook invoked after each entry runs during
// teardown. The hook receives the entry's metadata, its error (nil on
// success, before any [IgnoreErrors] suppression), and wall-clock
// duration. It runs on the goroutine calling [Scope.Close].
func WithOnCleanup(fn func(EntryInfo, error, time.Duration)) Option {
	return func(c *config) {
		c.onCleanup = fn
	}
}

type entryConfig struct {
	name         string
	ignoreErrors bool
}

// EntryOption configures a single cleanup entry at registration time.
type EntryOption func(*entryConfig)

// Named attributes a name to the entry. The name appears in the
// [*CleanupError] wrapping the entry's failure and in [EntryInfo].
func Named(name string) EntryOption {
	return func(c *entryConfig) {
		c.name = name
	}
}

// IgnoreErrors marks the entry's own failure (error return or panic) as
// ignorable: it is swallowed and unwinding continues. The teardown cause
// itself is never affected.
func IgnoreErrors() EntryOption {
	return func(c *entryConfig) {
		c.ignoreErrors = true
	}
}
