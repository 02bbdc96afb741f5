package domain

import (
	"time"

	"github.com/skovgaard/driftsync/internal/fspath"
)

// FileType represents the type of a filesystem entry
type FileType int

const (
	FileTypeRegular FileType = iota
	FileTypeDirectory
	FileTypeSymlink
)

// NodeKind maps the entry type onto the path engine's file/folder
// distinction used for name validation.
func (f FileType) NodeKind() fspath.NodeKind {
	if f == FileTypeDirectory {
		return fspath.NodeFolder
	}
	return fspath.NodeFile
}

// FileInfo represents metadata about a file or directory, addressed by
// its logical remote path. Adapters translate between this form and
// whatever escaped spelling the backing store requires.
type FileInfo struct {
	// Path is the decoded remote path relative to the endpoint root
	Path fspath.RemotePath

	// Type indicates if this is a file, directory, or symlink
	Type FileType

	// Size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Fingerprint is the content hash (empty for directories)
	Fingerprint string

	// ETag is the remote version identifier (for cloud adapters)
	ETag string

	// IsDeleted marks tombstones for tracking deletions
	IsDeleted bool
}

// IsDir returns true if this is a directory
func (f FileInfo) IsDir() bool {
	return f.Type == FileTypeDirectory
}

// IsFile returns true if this is a regular file
func (f FileInfo) IsFile() bool {
	return f.Type == FileTypeRegular
}
