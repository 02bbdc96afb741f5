// Package fsaccess wraps the platform file primitives the sync engine
// needs, classifying every failure so callers can tell a name that
// exceeds the platform's length limit apart from a path that will never
// succeed. The classification replaces an out-of-band sticky flag: each
// operation returns an error wrapping domain.ErrNameTooLong exactly
// when the length limit caused the failure, and never otherwise.
package fsaccess

import (
	"fmt"
	"io"
	"os"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// Access performs local filesystem operations over LocalPath values.
// Instances hold no mutable state and are safe for concurrent use.
type Access struct{}

// New returns a filesystem accessor.
func New() *Access {
	return &Access{}
}

// Cwd returns the current working directory as an absolute LocalPath.
func (a *Access) Cwd() (fspath.LocalPath, error) {
	dir, err := os.Getwd()
	if err != nil {
		return fspath.LocalPath{}, classify("getwd", err)
	}
	return fspath.FromAbsolutePath(dir), nil
}

// Stat returns metadata for the entry at path.
func (a *Access) Stat(path fspath.LocalPath) (os.FileInfo, error) {
	info, err := os.Stat(path.ToPath(false))
	if err != nil {
		return nil, classify("stat", err)
	}
	return info, nil
}

// Mkdir creates a single directory.
func (a *Access) Mkdir(path fspath.LocalPath) error {
	return classify("mkdir", os.Mkdir(path.ToPath(false), 0755))
}

// MkdirAll creates a directory and any missing parents.
func (a *Access) MkdirAll(path fspath.LocalPath) error {
	return classify("mkdir", os.MkdirAll(path.ToPath(false), 0755))
}

// Create opens path for writing, truncating any existing file. The
// returned file is unclassified; only the open itself is.
func (a *Access) Create(path fspath.LocalPath) (*os.File, error) {
	f, err := os.Create(path.ToPath(false))
	if err != nil {
		return nil, classify("create", err)
	}
	return f, nil
}

// Rename moves src to dst.
func (a *Access) Rename(src, dst fspath.LocalPath) error {
	return classify("rename", os.Rename(src.ToPath(false), dst.ToPath(false)))
}

// Copy duplicates the file at src to dst.
func (a *Access) Copy(src, dst fspath.LocalPath) error {
	in, err := os.Open(src.ToPath(false))
	if err != nil {
		return classify("copy", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst.ToPath(false), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return classify("copy", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return classify("copy", err)
	}
	return classify("copy", out.Close())
}

// RemoveFile deletes a single file.
func (a *Access) RemoveFile(path fspath.LocalPath) error {
	return classify("remove", os.Remove(path.ToPath(false)))
}

// RemoveDir deletes an empty directory.
func (a *Access) RemoveDir(path fspath.LocalPath) error {
	return classify("rmdir", os.Remove(path.ToPath(false)))
}

// EmptyDir deletes everything below path, keeping path itself.
func (a *Access) EmptyDir(path fspath.LocalPath) error {
	entries, err := os.ReadDir(path.ToPath(false))
	if err != nil {
		return classify("emptydir", err)
	}
	for _, entry := range entries {
		child := path
		child.AppendWithSeparator(fspath.FromRelativePath(entry.Name()), true)
		if err := os.RemoveAll(child.ToPath(false)); err != nil {
			return classify("emptydir", err)
		}
	}
	return nil
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isNameTooLong(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNameTooLong, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
