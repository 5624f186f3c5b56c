// Package archive implements the zip codec used for cache entries.
package archive

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"go.trai.ch/zerr"

	"github.com/conbuild/conbuild/internal/core/ports"
)

var (
	_ ports.Archiver  = (*Codec)(nil)
	_ ports.Extractor = (*Codec)(nil)
)

// Codec packs directory trees into zip archives and unpacks them again.
type Codec struct {
	logger ports.Logger
}

// NewCodec creates a Codec logging through the given logger.
func NewCodec(logger ports.Logger) *Codec {
	return &Codec{logger: logger}
}

// Pack writes the contents of srcDir to a zip archive at destPath. Immediate
// children that are regular files are added under their own name; child
// directories are added recursively with their relative structure. Files are
// streamed one at a time through a maximum-effort deflate compressor. A
// source path that vanishes between enumeration and open is logged as a
// warning and skipped; any other failure aborts the pack and removes the
// partially written destination.
func (c *Codec) Pack(ctx context.Context, srcDir, destPath string) (err error) {
	out, createErr := os.Create(destPath) //nolint:gosec // destination is chosen by the cache store
	if createErr != nil {
		return zerr.With(zerr.Wrap(createErr, "failed to create archive"), "path", destPath)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(destPath)
		}
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	children, readErr := os.ReadDir(srcDir)
	if readErr != nil {
		return zerr.With(zerr.Wrap(readErr, "failed to read source directory"), "path", srcDir)
	}

	for _, child := range children {
		if err = ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(srcDir, child.Name())
		switch {
		case child.IsDir():
			err = c.addTree(ctx, zw, path, child.Name())
		case child.Type().IsRegular():
			err = c.addFile(zw, path, child.Name())
		default:
			c.logger.Debug("skipping non-regular file: " + path)
		}
		if err != nil {
			return err
		}
	}

	// Completion is signaled only after every buffered byte has reached the
	// destination file and the file itself is closed.
	if err = zw.Close(); err != nil {
		return zerr.Wrap(err, "failed to finalize archive")
	}
	if err = out.Sync(); err != nil {
		return zerr.Wrap(err, "failed to flush archive")
	}
	if err = out.Close(); err != nil {
		return zerr.Wrap(err, "failed to close archive")
	}
	return nil
}

// addTree adds the full subtree rooted at dir under the relative name base.
// Directories are recorded as marker entries with a trailing slash.
func (c *Codec) addTree(ctx context.Context, zw *zip.Writer, dir, base string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				c.logger.Warn("source path vanished during packing", "path", path)
				return nil
			}
			return zerr.With(zerr.Wrap(walkErr, "failed to walk source tree"), "path", path)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return zerr.Wrap(err, "failed to relativize source path")
		}
		name := base
		if rel != "." {
			name = filepath.ToSlash(filepath.Join(base, rel))
		}

		if d.IsDir() {
			return c.addDirMarker(zw, path, name)
		}
		if !d.Type().IsRegular() {
			c.logger.Debug("skipping non-regular file: " + path)
			return nil
		}
		return c.addFile(zw, path, name)
	})
}

func (c *Codec) addDirMarker(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("source path vanished during packing", "path", path)
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", path)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return zerr.Wrap(err, "failed to build directory header")
	}
	header.Name = name + "/"
	if _, err := zw.CreateHeader(header); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add directory entry"), "entry", header.Name)
	}
	return nil
}

func (c *Codec) addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path) //nolint:gosec // path was produced by enumerating the source directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("source path vanished during packing", "path", path)
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", path)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return zerr.Wrap(err, "failed to build file header")
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add file entry"), "entry", name)
	}
	if _, err := io.Copy(w, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file entry"), "entry", name)
	}
	return nil
}
