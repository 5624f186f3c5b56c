// Package app implements the application layer for conbuild.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
)

// App represents the main application logic.
type App struct {
	loader       ports.ConfigLoader
	validator    ports.OptionValidator
	cacheFactory ports.CacheFactory
	bundler      ports.Bundler
	infoStore    ports.BuildInfoStore
	hasher       ports.OutputHasher
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	validator ports.OptionValidator,
	cacheFactory ports.CacheFactory,
	bundler ports.Bundler,
	infoStore ports.BuildInfoStore,
	hasher ports.OutputHasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		loader:       loader,
		validator:    validator,
		cacheFactory: cacheFactory,
		bundler:      bundler,
		infoStore:    infoStore,
		hasher:       hasher,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// BuildOptions are the CLI-level overrides for one build invocation.
type BuildOptions struct {
	// NoCache force-disables the cache regardless of configuration.
	NoCache bool
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
}

// Build runs one console build. When a cache entry exists for the tracked
// configuration the cached output is restored instead of invoking the build
// pipeline; a failed restore is treated as a cache miss and falls through to
// a full build. After a successful from-scratch build the output is stored
// for future runs; a failed store never fails the build that just completed.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.prepare(opts)
	if err != nil {
		return err
	}

	store, err := a.cacheFactory.New(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to initialize build cache")
	}

	if store.Exists() {
		if err := a.restoreFromCache(ctx, cfg, store); err == nil {
			return nil
		} else if ctx.Err() != nil {
			return err
		}
		// Fall through to a full build on any other restore failure.
	}

	return a.buildFromScratch(ctx, cfg, store)
}

// prepare loads the configuration, applies overrides, and validates options.
func (a *App) prepare(opts BuildOptions) (*domain.BuildConfig, error) {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.NoCache {
		cfg.NoCache = true
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	result := a.validator.Validate(cfg)
	for _, w := range result.Warnings() {
		a.logger.Warn(w.Message, "rule", w.Rule)
	}
	if !result.OK() {
		for _, e := range result.Errors() {
			a.logger.Error(zerr.With(zerr.New(e.Message), "rule", e.Rule))
		}
		return nil, domain.ErrInvalidOptions
	}
	return cfg, nil
}

func (a *App) restoreFromCache(ctx context.Context, cfg *domain.BuildConfig, store ports.BuildCache) error {
	_, vertex := a.telemetry.Record(ctx, "restore cached build "+cfg.TagName)

	start := time.Now()
	if err := store.Restore(ctx, cfg.OutputDir); err != nil {
		vertex.Complete(err)
		a.logger.Warn("cache restore failed, rebuilding", "error", err.Error())
		return err
	}
	vertex.Cached()
	vertex.Complete(nil)

	a.recordBuildInfo(cfg, store.Key(), time.Since(start), true)
	return nil
}

func (a *App) buildFromScratch(ctx context.Context, cfg *domain.BuildConfig, store ports.BuildCache) error {
	start := time.Now()

	if err := a.stage(ctx, cfg); err != nil {
		return err
	}

	bundleCtx, vertex := a.telemetry.Record(ctx, "bundle "+cfg.TagName)
	err := a.bundler.Bundle(bundleCtx, cfg, ".")
	vertex.Complete(err)
	if err != nil {
		return err
	}

	a.recordBuildInfo(cfg, store.Key(), time.Since(start), false)

	if err := store.Store(ctx, cfg.OutputDir); err != nil {
		// The freshly built output is still valid even if caching it failed.
		a.logger.Warn("failed to cache build output", "error", err.Error())
	}
	return nil
}

// stage copies the theme and index templates into the source tree before the
// bundler runs. The two copies are independent and run concurrently.
func (a *App) stage(ctx context.Context, cfg *domain.BuildConfig) error {
	if cfg.ThemeFile == "" && cfg.IndexFile == "" {
		return nil
	}

	if err := os.MkdirAll(cfg.SourceDir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create source directory")
	}

	g, _ := errgroup.WithContext(ctx)
	if cfg.ThemeFile != "" {
		g.Go(func() error {
			return copyFile(cfg.ThemeFile, filepath.Join(cfg.SourceDir, "theme.css"))
		})
	}
	if cfg.IndexFile != "" {
		g.Go(func() error {
			return copyFile(cfg.IndexFile, filepath.Join(cfg.SourceDir, "index.html"))
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "failed to stage templates")
	}
	return nil
}

// recordBuildInfo persists advisory metadata about the finished build.
// Failures are logged and swallowed; build info is never load-bearing.
func (a *App) recordBuildInfo(cfg *domain.BuildConfig, key string, duration time.Duration, fromCache bool) {
	outputHash, err := a.hasher.HashTree(cfg.OutputDir)
	if err != nil {
		a.logger.Warn("failed to hash build output", "error", err.Error())
	}

	info := domain.BuildInfo{
		CacheKey:   key,
		TagName:    cfg.TagName,
		OutputHash: outputHash,
		Duration:   duration,
		Timestamp:  time.Now(),
		FromCache:  fromCache,
	}
	if err := a.infoStore.Put(info); err != nil {
		a.logger.Warn("failed to record build info", "error", err.Error())
	}
}

// CacheStatus describes the cache state for the current configuration.
type CacheStatus struct {
	Enabled bool
	Key     string
	Root    string
	Exists  bool
}

// Status reports whether a cached build exists for the current configuration
// without building anything.
func (a *App) Status() (*CacheStatus, error) {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	store, err := a.cacheFactory.New(cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize build cache")
	}

	return &CacheStatus{
		Enabled: store.Enabled(),
		Key:     store.Key(),
		Root:    store.Root(),
		Exists:  store.Exists(),
	}, nil
}

// Close releases application resources (the telemetry session).
func (a *App) Close() error {
	return a.telemetry.Close()
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // template path comes from the user's configuration
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open template"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only file

	out, err := os.Create(dest) //nolint:gosec // destination is inside the configured source dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staged template"), "path", dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy template"), "path", dest)
	}
	return out.Close()
}
