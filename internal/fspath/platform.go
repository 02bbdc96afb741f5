package fspath

// PlatformPathOps describes the path conventions of one operating system.
// Both variants are always compiled so foreign-platform semantics can be
// exercised anywhere; Native returns the one matching the build target.
// Callers that manage volumes with foreign conventions (e.g. an NTFS
// volume mounted on Linux) inject the matching variant explicitly.
type PlatformPathOps interface {
	// Separator is the single native separator character.
	Separator() byte

	// CaseInsensitive reports whether the platform's default filesystem
	// is case-preserving but case-insensitive.
	CaseInsensitive() bool

	// StripPathPrefix removes namespace prefixes that carry no naming
	// information before comparison. Only absolute paths are affected.
	StripPathPrefix(path string, absolute bool) string

	// RestrictsReservedNames reports whether the platform forbids DOS
	// device names and trailing dots.
	RestrictsReservedNames() bool
}

// UnixPathOps implements PlatformPathOps for POSIX filesystems.
type UnixPathOps struct{}

func (UnixPathOps) Separator() byte { return '/' }
func (UnixPathOps) CaseInsensitive() bool { return false }
func (UnixPathOps) RestrictsReservedNames() bool { return false }

func (UnixPathOps) StripPathPrefix(path string, absolute bool) string {
	return path
}

// WindowsPathOps implements PlatformPathOps for Windows filesystems.
type WindowsPathOps struct{}

func (WindowsPathOps) Separator() byte { return '\\' }
func (WindowsPathOps) CaseInsensitive() bool { return true }
func (WindowsPathOps) RestrictsReservedNames() bool { return true }

// StripPathPrefix drops the extended-length and device namespace
// prefixes so that `\\?\C:\` and `C:\` compare equal.
func (WindowsPathOps) StripPathPrefix(path string, absolute bool) string {
	if !absolute {
		return path
	}
	if len(path) >= 4 && path[0] == '\\' && path[1] == '\\' && path[3] == '\\' {
		if path[2] == '?' || path[2] == '.' {
			return path[4:]
		}
	}
	return path
}
