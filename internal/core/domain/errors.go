package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheDisabled is returned when a cache operation is attempted on a
	// store constructed with caching turned off.
	ErrCacheDisabled = zerr.New("build cache is disabled")

	// ErrCacheEntryNotFound is returned by restore when no archive exists for
	// the computed cache key.
	ErrCacheEntryNotFound = zerr.New("cache entry not found")

	// ErrNoCacheRoot is returned when neither the application-data environment
	// variable nor a home directory is available to place the cache under.
	ErrNoCacheRoot = zerr.New("cannot determine a writable cache root")

	// ErrInvalidOptions is returned when option validation finds at least one
	// fatal finding.
	ErrInvalidOptions = zerr.New("invalid build options")
)
