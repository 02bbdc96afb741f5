//go:build darwin

package fsaccess

import (
	"golang.org/x/sys/unix"

	"github.com/skovgaard/driftsync/internal/fspath"
)

// DetectFilesystem classifies the volume holding path. Failures and
// unrecognized filesystems report Unknown, which keeps the escape
// policy at its most restrictive.
func DetectFilesystem(path fspath.LocalPath) fspath.FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path.ToPath(false), &st); err != nil {
		return fspath.FilesystemUnknown
	}
	return fspath.ParseFilesystemType(unix.ByteSliceToString(st.Fstypename[:]))
}
