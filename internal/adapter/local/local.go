// Package local adapts an on-disk directory tree to the adapter
// interface. Remote-origin names are stored percent-escaped with the
// volume's policy and decoded again on the way out, so the tree can
// hold any name the cloud namespace allows.
package local

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fsaccess"
	"github.com/skovgaard/driftsync/internal/fspath"
	"github.com/skovgaard/driftsync/internal/logger"
)

// fingerprintLimit bounds the file size for which content hashes are
// computed during listing.
const fingerprintLimit = 100 * 1024 * 1024

// Adapter implements the adapter interface for a local directory tree.
type Adapter struct {
	root   fspath.LocalPath
	fsType fspath.FilesystemType
	access *fsaccess.Access
}

// New creates a local adapter rooted at an existing directory,
// detecting the volume's filesystem type to pick the escape policy.
func New(root string) (*Adapter, error) {
	path := fspath.FromAbsolutePath(root)
	return NewWithFilesystem(root, fsaccess.DetectFilesystem(path))
}

// NewWithFilesystem is New with an explicit escape policy, for callers
// that know the volume better than detection does.
func NewWithFilesystem(root string, t fspath.FilesystemType) (*Adapter, error) {
	access := fsaccess.New()
	path := fspath.FromAbsolutePath(root)

	info, err := access.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, domain.ErrNotDirectory
	}

	return &Adapter{root: path, fsType: t, access: access}, nil
}

// Filesystem returns the escape policy in effect.
func (a *Adapter) Filesystem() fspath.FilesystemType {
	return a.fsType
}

// resolve maps a remote path onto the escaped on-disk path. Every
// component is escaped independently; the containment check guards
// against any remaining way of escaping the root.
func (a *Adapter) resolve(remote fspath.RemotePath) (fspath.LocalPath, error) {
	full := a.root
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			break
		}
		if component == "." || component == ".." {
			return fspath.LocalPath{}, domain.ErrPermissionDenied
		}
		full.AppendWithSeparator(fspath.FromRelativeName(string(component), a.fsType), true)
	}
	if _, ok := a.root.IsContainingPathOf(full); !ok {
		return fspath.LocalPath{}, domain.ErrPermissionDenied
	}
	return full, nil
}

// leafName returns the final component of a remote path, or "".
func leafName(remote fspath.RemotePath) string {
	leaf := ""
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return leaf
		}
		leaf = string(component)
	}
}

// List returns all entries directly under the given path, with names
// decoded back to their remote form.
func (a *Adapter) List(ctx context.Context, remote fspath.RemotePath) ([]domain.FileInfo, error) {
	full, err := a.resolve(remote)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full.ToPath(false))
	if err != nil {
		return nil, mapError(err)
	}

	result := make([]domain.FileInfo, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			continue // entry vanished between readdir and stat
		}

		childRemote := remote.AppendComponent(fspath.Unescape(entry.Name()))
		fileInfo := fileInfoFromOS(childRemote, info)

		if fileInfo.IsFile() && fileInfo.Size <= fingerprintLimit {
			childLocal := full
			childLocal.AppendWithSeparator(fspath.FromRelativePath(entry.Name()), true)
			if fp, err := fingerprint(ctx, childLocal); err == nil {
				fileInfo.Fingerprint = fp
			} else {
				// A missing hash falls back to time-based comparison.
				logger.Get().Debug("fingerprint failed", "name", entry.Name(), "error", err)
			}
		}
		result = append(result, fileInfo)
	}
	return result, nil
}

// Read opens a file for reading.
func (a *Adapter) Read(ctx context.Context, remote fspath.RemotePath) (io.ReadCloser, error) {
	full, err := a.resolve(remote)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full.ToPath(false))
	if err != nil {
		return nil, mapError(err)
	}
	if info.IsDir() {
		return nil, domain.ErrNotFile
	}

	f, err := os.Open(full.ToPath(false))
	if err != nil {
		return nil, mapError(err)
	}
	return f, nil
}

// Write creates or overwrites a file, creating parents as needed. The
// leaf name is validated against the volume's reserved names and the
// component length limit before any I/O happens.
func (a *Adapter) Write(ctx context.Context, remote fspath.RemotePath, r io.Reader) error {
	if err := fsaccess.ValidateName(leafName(remote), fspath.NodeFile, a.fsType); err != nil {
		return err
	}

	full, err := a.resolve(remote)
	if err != nil {
		return err
	}

	parent := a.root
	components := splitComponents(remote)
	for _, component := range components[:len(components)-1] {
		if err := fsaccess.ValidateName(component, fspath.NodeFolder, a.fsType); err != nil {
			return err
		}
		parent.AppendWithSeparator(fspath.FromRelativeName(component, a.fsType), true)
	}
	if err := a.access.MkdirAll(parent); err != nil {
		return mapError(err)
	}

	f, err := a.access.Create(full)
	if err != nil {
		return mapError(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return mapError(err)
	}
	return mapError(f.Close())
}

// Delete removes a file or empty directory.
func (a *Adapter) Delete(ctx context.Context, remote fspath.RemotePath) error {
	full, err := a.resolve(remote)
	if err != nil {
		return err
	}
	return mapError(os.Remove(full.ToPath(false)))
}

// Stat returns metadata for a single path.
func (a *Adapter) Stat(ctx context.Context, remote fspath.RemotePath) (domain.FileInfo, error) {
	full, err := a.resolve(remote)
	if err != nil {
		return domain.FileInfo{}, err
	}
	info, err := os.Stat(full.ToPath(false))
	if err != nil {
		return domain.FileInfo{}, mapError(err)
	}
	return fileInfoFromOS(remote, info), nil
}

// Mkdir creates a directory and any necessary parents, validating each
// component as a folder name.
func (a *Adapter) Mkdir(ctx context.Context, remote fspath.RemotePath) error {
	for _, component := range splitComponents(remote) {
		if err := fsaccess.ValidateName(component, fspath.NodeFolder, a.fsType); err != nil {
			return err
		}
	}

	full, err := a.resolve(remote)
	if err != nil {
		return err
	}
	return mapError(a.access.MkdirAll(full))
}

// Exists checks if a path exists.
func (a *Adapter) Exists(ctx context.Context, remote fspath.RemotePath) (bool, error) {
	full, err := a.resolve(remote)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full.ToPath(false)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, mapError(err)
	}
	return true, nil
}

// Close releases resources; the local adapter holds none.
func (a *Adapter) Close() error {
	return nil
}

func splitComponents(remote fspath.RemotePath) []string {
	var components []string
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return components
		}
		components = append(components, string(component))
	}
}

func fileInfoFromOS(remote fspath.RemotePath, info os.FileInfo) domain.FileInfo {
	fileType := domain.FileTypeRegular
	switch {
	case info.IsDir():
		fileType = domain.FileTypeDirectory
	case info.Mode()&os.ModeSymlink != 0:
		fileType = domain.FileTypeSymlink
	}
	return domain.FileInfo{
		Path:    remote,
		Type:    fileType,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

func fingerprint(ctx context.Context, path fspath.LocalPath) (string, error) {
	f, err := os.Open(path.ToPath(false))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return domain.ErrNotFound
	case os.IsPermission(err):
		return domain.ErrPermissionDenied
	case errors.Is(err, domain.ErrNameTooLong):
		return err
	default:
		return fmt.Errorf("local adapter: %w", err)
	}
}
