package ports

import "context"

// Archiver packs a directory tree into a single compressed archive file.
//
//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type Archiver interface {
	// Pack writes the contents of srcDir to a compressed archive at destPath,
	// streaming file-by-file. A failed pack removes the partial destination.
	Pack(ctx context.Context, srcDir, destPath string) error
}

// Extractor unpacks a compressed archive into a destination directory,
// preserving relative paths.
type Extractor interface {
	// Unpack reads the archive one entry at a time; the next entry is opened
	// only after the previous entry's file has been fully written and closed.
	Unpack(ctx context.Context, srcPath, destDir string) error
}
