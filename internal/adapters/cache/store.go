package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// entryExt is the archive extension of a cache entry.
const entryExt = ".zip"

var _ ports.BuildCache = (*Store)(nil)

// Store is the build cache facade. Key and root are computed once at
// construction and never change for the lifetime of the instance.
type Store struct {
	enabled  bool
	key      string
	root     string
	packer   ports.Archiver
	unpacker ports.Extractor
	logger   ports.Logger
}

// NewStore creates a Store for the given configuration. When cfg.NoCache is
// set the store is disabled and neither key nor root are computed.
func NewStore(
	cfg *domain.BuildConfig,
	locator *Locator,
	packer ports.Archiver,
	unpacker ports.Extractor,
	logger ports.Logger,
) (*Store, error) {
	if cfg.NoCache {
		logger.Debug("build cache disabled by configuration")
		return NewDisabled(logger), nil
	}

	root, err := locator.CacheRoot()
	if err != nil {
		if errors.Is(err, domain.ErrNoCacheRoot) {
			// A machine without a resolvable profile directory builds fine,
			// it just never reuses output.
			logger.Warn("build cache unavailable", "error", err.Error())
			return NewDisabled(logger), nil
		}
		return nil, err
	}

	key := ComputeKey(cfg)
	logger.Debug("build cache key: " + key)

	return &Store{
		enabled:  true,
		key:      key,
		root:     root,
		packer:   packer,
		unpacker: unpacker,
		logger:   logger,
	}, nil
}

// NewDisabled creates a store with caching turned off. Exists always reports
// false, Store is a no-op, and Restore fails with domain.ErrCacheDisabled.
func NewDisabled(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Enabled reports whether caching is active.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Key returns the hex-encoded cache key, or "" when caching is disabled.
func (s *Store) Key() string {
	return s.key
}

// Root returns the cache root directory, or "" when caching is disabled.
func (s *Store) Root() string {
	return s.root
}

// EntryPath returns the full path of the cache entry for this store's key.
func (s *Store) EntryPath() string {
	if !s.enabled {
		return ""
	}
	return filepath.Join(s.root, s.key+entryExt)
}

// Exists reports whether a cache entry file is present for the key. It has no
// side effects and always reports false when caching is disabled.
func (s *Store) Exists() bool {
	if !s.enabled {
		return false
	}
	info, err := os.Stat(s.EntryPath())
	return err == nil && info.Mode().IsRegular()
}

// Restore extracts the cache entry into destDir. Extraction happens in a
// scratch directory next to destDir which is renamed into place only on full
// success, so a failed restore leaves destDir exactly as it was.
func (s *Store) Restore(ctx context.Context, destDir string) error {
	if !s.enabled {
		return domain.ErrCacheDisabled
	}

	entry := s.EntryPath()
	if _, err := os.Stat(entry); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrCacheEntryNotFound, "path", entry)
		}
		return zerr.With(zerr.Wrap(err, "failed to stat cache entry"), "path", entry)
	}

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create restore destination parent")
	}

	scratch, err := os.MkdirTemp(parent, ".conbuild-restore-")
	if err != nil {
		return zerr.Wrap(err, "failed to create restore scratch directory")
	}

	if err := s.unpacker.Unpack(ctx, entry, scratch); err != nil {
		_ = os.RemoveAll(scratch)
		return zerr.With(zerr.Wrap(err, "failed to restore cache entry"), "key", s.key)
	}

	if err := os.RemoveAll(destDir); err != nil {
		_ = os.RemoveAll(scratch)
		return zerr.Wrap(err, "failed to replace restore destination")
	}
	if err := os.Rename(scratch, destDir); err != nil {
		_ = os.RemoveAll(scratch)
		return zerr.Wrap(err, "failed to promote restored output")
	}

	s.logger.Info("restored build output from cache")
	return nil
}

// Store packs srcDir into the cache entry for the key, overwriting any prior
// entry wholesale. The archive is written to a temporary file in the cache
// root and renamed onto the entry path, so concurrent readers never observe a
// truncated archive. No-op when caching is disabled.
func (s *Store) Store(ctx context.Context, srcDir string) error {
	if !s.enabled {
		s.logger.Debug("skipping cache store: caching disabled")
		return nil
	}

	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache root"), "path", s.root)
	}

	tmp, err := os.CreateTemp(s.root, s.key+"-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary cache entry")
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temporary cache entry")
	}

	if err := s.packer.Pack(ctx, srcDir, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to pack build output"), "key", s.key)
	}

	if err := os.Rename(tmpPath, s.EntryPath()); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to publish cache entry")
	}

	s.logger.Debug("stored build output in cache: " + s.key + entryExt)
	return nil
}

var _ ports.CacheFactory = (*Factory)(nil)

// Factory builds cache stores for loaded configurations.
type Factory struct {
	Locator  *Locator
	Packer   ports.Archiver
	Unpacker ports.Extractor
	Logger   ports.Logger
}

// New implements ports.CacheFactory.
func (f *Factory) New(cfg *domain.BuildConfig) (ports.BuildCache, error) {
	return NewStore(cfg, f.Locator, f.Packer, f.Unpacker, f.Logger)
}
