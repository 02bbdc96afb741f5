package adapter

import (
	"context"
	"io"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// Adapter defines the interface for storage backends. Entries are
// addressed by decoded remote paths relative to the adapter's root;
// each implementation owns the translation to whatever escaped
// spelling its store requires, so two paths the comparator considers
// equal always address the same entry.
type Adapter interface {
	// List returns all entries directly under the given path.
	// Returns domain.ErrNotFound if the path doesn't exist.
	// Returns domain.ErrNotDirectory if the path is a file.
	List(ctx context.Context, path fspath.RemotePath) ([]domain.FileInfo, error)

	// Read opens a file for reading. Caller closes the reader.
	// Returns domain.ErrNotFound if the file doesn't exist.
	// Returns domain.ErrNotFile if the path is a directory.
	Read(ctx context.Context, path fspath.RemotePath) (io.ReadCloser, error)

	// Write creates or overwrites a file, creating parents as needed.
	// Returns an error wrapping domain.ErrNameTooLong or
	// domain.ErrReservedName when the leaf name cannot be stored.
	Write(ctx context.Context, path fspath.RemotePath, r io.Reader) error

	// Delete removes a file or empty directory.
	// Returns domain.ErrNotFound if the path doesn't exist.
	Delete(ctx context.Context, path fspath.RemotePath) error

	// Stat returns metadata for a single path.
	// Returns domain.ErrNotFound if the path doesn't exist.
	Stat(ctx context.Context, path fspath.RemotePath) (domain.FileInfo, error)

	// Mkdir creates a directory and any necessary parents.
	// No error if the directory already exists.
	Mkdir(ctx context.Context, path fspath.RemotePath) error

	// Exists checks if a path exists.
	Exists(ctx context.Context, path fspath.RemotePath) (bool, error)

	// Close releases any resources held by the adapter.
	Close() error
}

// Factory creates adapters for a given transport configuration.
type Factory interface {
	// Create returns an adapter bound to the endpoint's root.
	Create(ctx context.Context, transport domain.Transport, endpoint domain.Endpoint) (Adapter, error)

	// Supports returns true if this factory can handle the transport type.
	Supports(transportType domain.TransportType) bool
}
