package state

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/conbuild/conbuild/internal/core/ports"
)

var _ ports.OutputHasher = (*Hasher)(nil)

// Hasher implements ports.OutputHasher with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashTree computes a fast digest over the output tree rooted at dir: every
// regular file's relative path and content hash folded into one xxhash. The
// result is recorded in build info for diagnostics only and plays no part in
// cache identity.
func (h *Hasher) HashTree(dir string) (string, error) {
	hasher := xxhash.New()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return zerr.With(zerr.Wrap(walkErr, "failed to walk output tree"), "path", path)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return zerr.Wrap(err, "failed to relativize output path")
		}
		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})

		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		return binary.Write(hasher, binary.LittleEndian, sum)
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path produced by walking the output tree
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open output file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash output file"), "path", path)
	}
	return hasher.Sum64(), nil
}
