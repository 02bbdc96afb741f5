package fspath

import "strings"

// NodeKind distinguishes files from directories where the platform
// applies different naming rules.
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeFolder
)

// DOS device names, forbidden as base names on Windows regardless of
// extension.
var reservedDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// IsReservedName reports whether name is forbidden on the native
// platform. See IsReservedNameOn.
func IsReservedName(name string, kind NodeKind) bool {
	return IsReservedNameOn(Native(), name, kind)
}

// IsReservedNameOn matches name case-insensitively against the
// platform's device-name table, ignoring everything after the first
// dot. A trailing dot is itself reserved, but only for directories;
// files with a trailing dot are allowed. Platforms without naming
// restrictions never report a reserved name.
func IsReservedNameOn(ops PlatformPathOps, name string, kind NodeKind) bool {
	if !ops.RestrictsReservedNames() || name == "" {
		return false
	}
	if kind == NodeFolder && name[len(name)-1] == '.' {
		return true
	}
	base := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		base = name[:i]
	}
	_, ok := reservedDeviceNames[strings.ToUpper(base)]
	return ok
}
