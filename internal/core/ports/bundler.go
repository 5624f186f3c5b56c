package ports

import (
	"context"

	"github.com/conbuild/conbuild/internal/core/domain"
)

// Bundler invokes the external bundler process that turns the staged console
// sources into static output.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle runs the bundler for cfg with the given working directory.
	// Stdout and stderr are streamed to the logger (or the telemetry vertex
	// attached to ctx) as the process runs.
	Bundle(ctx context.Context, cfg *domain.BuildConfig, workDir string) error
}
