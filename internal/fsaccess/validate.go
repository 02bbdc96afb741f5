package fsaccess

import (
	"fmt"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// NameMax is the per-component length limit assumed before asking the
// filesystem. The true limit depends on the specific filesystem; 255 is
// the common denominator of the supported ones.
const NameMax = 255

// ValidateName gates a candidate name before any I/O is requested:
// the escaped on-disk spelling must fit the component length limit and
// must not collide with a name the platform reserves. The name is the
// decoded remote form; escaping is applied with the target volume's
// policy before measuring.
func ValidateName(name string, kind fspath.NodeKind, t fspath.FilesystemType) error {
	if name == "" {
		return fmt.Errorf("empty name is not a valid entry name")
	}
	if fspath.IsReservedNameOn(reservedOps(t), name, kind) {
		return fmt.Errorf("%q: %w", name, domain.ErrReservedName)
	}
	if escaped := fspath.Escape(name, t); len(escaped) > NameMax {
		return fmt.Errorf("%q: %w", name, domain.ErrNameTooLong)
	}
	return nil
}

// reservedOps picks the naming rules for a target volume. Windows
// family filesystems carry their device-name restrictions onto any
// host; for the rest the host's own rules apply, since the OS enforces
// them regardless of the volume.
func reservedOps(t fspath.FilesystemType) fspath.PlatformPathOps {
	switch t {
	case fspath.FilesystemFAT, fspath.FilesystemExFAT, fspath.FilesystemNTFS, fspath.FilesystemUnknown:
		return fspath.WindowsPathOps{}
	default:
		return fspath.Native()
	}
}
