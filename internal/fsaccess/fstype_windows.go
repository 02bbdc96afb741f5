//go:build windows

package fsaccess

import (
	"path/filepath"

	"golang.org/x/sys/windows"

	"github.com/skovgaard/driftsync/internal/fspath"
)

// DetectFilesystem classifies the volume holding path. Failures and
// unrecognized filesystems report Unknown, which keeps the escape
// policy at its most restrictive.
func DetectFilesystem(path fspath.LocalPath) fspath.FilesystemType {
	volume := filepath.VolumeName(path.ToPath(false))
	if volume == "" {
		return fspath.FilesystemUnknown
	}
	root, err := windows.UTF16PtrFromString(volume + `\`)
	if err != nil {
		return fspath.FilesystemUnknown
	}

	var fsName [windows.MAX_PATH + 1]uint16
	err = windows.GetVolumeInformation(root, nil, 0, nil, nil, nil,
		&fsName[0], uint32(len(fsName)))
	if err != nil {
		return fspath.FilesystemUnknown
	}
	return fspath.ParseFilesystemType(windows.UTF16ToString(fsName[:]))
}
