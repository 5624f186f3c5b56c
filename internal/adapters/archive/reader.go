package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/zerr"
)

// Unpack extracts the archive at srcPath into destDir, preserving relative
// paths. Entries are processed strictly one at a time: the next entry is
// opened only after the previous entry's file has been fully written and
// closed, so at most one file handle per side is in flight regardless of
// archive size. Directory-marker entries are skipped without writing
// anything. A failed open of the archive itself fails before any entry work;
// a failed entry is logged and aborts the remainder of the extraction.
func (c *Codec) Unpack(ctx context.Context, srcPath, destDir string) error {
	zr, err := zip.OpenReader(srcPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive"), "path", srcPath)
	}
	defer zr.Close() //nolint:errcheck // read-only archive

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.HasSuffix(entry.Name, "/") {
			// Directory marker: no file is created at the marker's name.
			continue
		}
		if err := c.extractEntry(entry, destDir); err != nil {
			c.logger.Warn("failed to extract archive entry", "entry", entry.Name)
			return err
		}
	}
	return nil
}

func (c *Codec) extractEntry(entry *zip.File, destDir string) error {
	name := filepath.FromSlash(entry.Name)
	if !filepath.IsLocal(name) {
		return zerr.With(zerr.New("archive entry escapes destination"), "entry", entry.Name)
	}
	target := filepath.Join(destDir, name)

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create entry parent directory"), "entry", entry.Name)
	}

	rc, err := entry.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive entry"), "entry", entry.Name)
	}
	defer rc.Close() //nolint:errcheck // read side of the entry stream

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // entry name verified local above
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create extracted file"), "entry", entry.Name)
	}

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // archive is a trusted local cache entry
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to write extracted file"), "entry", entry.Name)
	}

	// The write stream must be fully closed before the caller moves on to the
	// next entry.
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close extracted file"), "entry", entry.Name)
	}
	return nil
}
