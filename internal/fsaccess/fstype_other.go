//go:build !linux && !darwin && !windows

package fsaccess

import "github.com/skovgaard/driftsync/internal/fspath"

// DetectFilesystem has no detection support on this platform; the
// Unknown result keeps the escape policy at its most restrictive.
func DetectFilesystem(path fspath.LocalPath) fspath.FilesystemType {
	return fspath.FilesystemUnknown
}
