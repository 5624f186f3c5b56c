package cache

import (
	"path/filepath"

	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultNamespace is the application subpath under the platform base
// directory.
const DefaultNamespace = "conbuild"

// fallbackBase is used on platforms without a known per-user preferences
// location.
const fallbackBase = "/var/local"

// Locator resolves the platform-specific directory all cache entries live
// under. Platform and environment lookup are injected so resolution is a pure
// function of its inputs and testable without touching real user profiles.
type Locator struct {
	Platform  string
	Getenv    func(string) string
	Namespace string
	Logger    ports.Logger
}

// CacheRoot resolves the base directory in order: the APPDATA environment
// variable when set and non-empty, then the per-platform default, and appends
// <namespace>/cache/builds. When no base directory can be determined it
// returns domain.ErrNoCacheRoot instead of an undefined path.
func (l *Locator) CacheRoot() (string, error) {
	ns := l.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	base, err := l.baseDir()
	if err != nil {
		return "", err
	}

	root := filepath.Join(base, ns, "cache", "builds")
	if l.Logger != nil {
		l.Logger.Debug("resolved cache root: " + root)
	}
	return root, nil
}

func (l *Locator) baseDir() (string, error) {
	if appData := l.Getenv("APPDATA"); appData != "" {
		return appData, nil
	}

	switch l.Platform {
	case "darwin":
		if home := l.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Preferences"), nil
		}
	case "linux":
		if home := l.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config"), nil
		}
	default:
		return fallbackBase, nil
	}

	return "", zerr.With(domain.ErrNoCacheRoot, "platform", l.Platform)
}
