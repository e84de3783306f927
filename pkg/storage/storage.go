// Package storage defines the FileStore interface for persisting compiled
// MIDI artifacts. The compiler returns plain bytes; choosing a destination
// and writing them is the caller's job, and FileStore abstracts where that
// destination lives so output can go to a local directory or an
// S3-compatible object store without changing application code.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// FileInfo describes one stored artifact, as reported by List.
type FileInfo struct {
	// Name is the artifact's storage path relative to the store root.
	Name string `json:"name"`
	// Size is the artifact size in bytes.
	Size int64 `json:"size"`
	// ModTime is the last modification time, zero if the backend does not
	// report one.
	ModTime time.Time `json:"modTime,omitzero"`
}

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing.
	// If the file already exists it is truncated.
	// Parent directories are created automatically.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file.
	// If the file does not exist, Delete returns nil (idempotent).
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// List returns the files under the store root whose names end with one
	// of the given suffixes (e.g. ".mid", ".midi"), sorted by name.
	// An empty suffix list matches everything.
	List(ctx context.Context, suffixes ...string) ([]FileInfo, error)
}

// matchSuffix reports whether name matches one of the suffixes. An empty
// suffix list matches everything.
func matchSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
