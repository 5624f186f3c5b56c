package ports

import (
	"context"

	"github.com/conbuild/conbuild/internal/core/domain"
)

// BuildCache stores and restores complete build output trees keyed by a
// deterministic digest of the tracked configuration fields.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type BuildCache interface {
	// Enabled reports whether caching is active for this store instance.
	Enabled() bool

	// Key returns the hex-encoded cache key, or "" when caching is disabled.
	Key() string

	// Root returns the cache root directory, or "" when caching is disabled.
	Root() string

	// Exists reports whether a cache entry is present for the key. It always
	// returns false when caching is disabled and has no side effects.
	Exists() bool

	// Restore extracts the cache entry into destDir. A missing entry yields
	// domain.ErrCacheEntryNotFound. On any failure destDir is left untouched.
	Restore(ctx context.Context, destDir string) error

	// Store packs srcDir into the cache entry for the key, overwriting any
	// prior entry. It is a no-op when caching is disabled.
	Store(ctx context.Context, srcDir string) error
}

// CacheFactory builds a BuildCache for a loaded configuration.
type CacheFactory interface {
	// New computes the cache key and root for cfg and returns the store.
	// A configuration with NoCache set yields a disabled store.
	New(cfg *domain.BuildConfig) (BuildCache, error)
}
