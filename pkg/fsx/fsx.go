package fsx

import (
	"context"
	"io"
)

// FileReader reads files from a storage backend
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem is the storage abstraction used for uploaded documents
type FileSystem interface {
	FileReader

	// WriteFileStream writes the reader's contents to path
	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	// DeleteFile removes the file at path
	DeleteFile(ctx context.Context, path string) error

	// Join builds a backend-appropriate path from parts
	Join(parts ...string) string
}
