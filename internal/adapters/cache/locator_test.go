package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbuild/conbuild/internal/adapters/cache"
	"github.com/conbuild/conbuild/internal/adapters/logger"
	"github.com/conbuild/conbuild/internal/core/domain"
)

func envMap(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestLocator_CacheRoot_AppDataWins(t *testing.T) {
	loc := &cache.Locator{
		Platform: "linux",
		Getenv: envMap(map[string]string{
			"APPDATA": "/roaming/appdata",
			"HOME":    "/home/dev",
		}),
		Logger: logger.New(),
	}

	root, err := loc.CacheRoot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/roaming/appdata", "conbuild", "cache", "builds"), root)
}

func TestLocator_CacheRoot_Darwin(t *testing.T) {
	loc := &cache.Locator{
		Platform: "darwin",
		Getenv:   envMap(map[string]string{"HOME": "/Users/dev"}),
		Logger:   logger.New(),
	}

	root, err := loc.CacheRoot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/Users/dev", "Library", "Preferences", "conbuild", "cache", "builds"), root)
}

func TestLocator_CacheRoot_Linux(t *testing.T) {
	loc := &cache.Locator{
		Platform: "linux",
		Getenv:   envMap(map[string]string{"HOME": "/home/dev"}),
		Logger:   logger.New(),
	}

	root, err := loc.CacheRoot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/dev", ".config", "conbuild", "cache", "builds"), root)
}

func TestLocator_CacheRoot_NoHome(t *testing.T) {
	for _, platform := range []string{"darwin", "linux"} {
		loc := &cache.Locator{
			Platform: platform,
			Getenv:   envMap(nil),
			Logger:   logger.New(),
		}

		_, err := loc.CacheRoot()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoCacheRoot)
	}
}

func TestLocator_CacheRoot_OtherPlatformFallback(t *testing.T) {
	loc := &cache.Locator{
		Platform: "freebsd",
		Getenv:   envMap(nil),
		Logger:   logger.New(),
	}

	root, err := loc.CacheRoot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/var/local", "conbuild", "cache", "builds"), root)
}

func TestLocator_CacheRoot_CustomNamespace(t *testing.T) {
	loc := &cache.Locator{
		Platform:  "linux",
		Getenv:    envMap(map[string]string{"HOME": "/home/dev"}),
		Namespace: "conbuild-dev",
		Logger:    logger.New(),
	}

	root, err := loc.CacheRoot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/dev", ".config", "conbuild-dev", "cache", "builds"), root)
}
