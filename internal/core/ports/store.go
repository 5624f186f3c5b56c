package ports

import "github.com/conbuild/conbuild/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build
// information.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info recorded for a cache key.
	// Returns nil, nil if not found.
	Get(cacheKey string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(info domain.BuildInfo) error
}
