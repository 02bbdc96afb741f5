//go:build linux

package fsaccess

import (
	"golang.org/x/sys/unix"

	"github.com/skovgaard/driftsync/internal/fspath"
)

// statfs magic numbers, from linux/magic.h.
const (
	magicExt   = 0xEF53
	magicMSDOS = 0x4d44
	magicExFAT = 0x2011BAB0
	magicNTFS  = 0x5346544e
	magicHFS   = 0x482b
)

// DetectFilesystem classifies the volume holding path. Failures and
// unrecognized filesystems report Unknown, which keeps the escape
// policy at its most restrictive.
func DetectFilesystem(path fspath.LocalPath) fspath.FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path.ToPath(false), &st); err != nil {
		return fspath.FilesystemUnknown
	}
	switch uint32(st.Type) {
	case magicExt:
		return fspath.FilesystemExt
	case magicMSDOS:
		return fspath.FilesystemFAT
	case magicExFAT:
		return fspath.FilesystemExFAT
	case magicNTFS:
		return fspath.FilesystemNTFS
	case magicHFS:
		return fspath.FilesystemHFS
	default:
		return fspath.FilesystemUnknown
	}
}
