package fspath

import "strings"

// FilesystemType classifies the target volume so the escape codec can
// pick the matching reserved-character set. The zero value is Unknown,
// which uses the most restrictive set; when the target filesystem
// cannot be determined the codec stays safe.
type FilesystemType int

const (
	FilesystemUnknown FilesystemType = iota
	FilesystemFAT
	FilesystemExFAT
	FilesystemNTFS
	FilesystemHFS
	FilesystemExt
)

// String returns the lowercase identifier used in configuration files.
func (t FilesystemType) String() string {
	switch t {
	case FilesystemFAT:
		return "fat"
	case FilesystemExFAT:
		return "exfat"
	case FilesystemNTFS:
		return "ntfs"
	case FilesystemHFS:
		return "hfs"
	case FilesystemExt:
		return "ext"
	default:
		return "unknown"
	}
}

// ParseFilesystemType maps a configuration value to a FilesystemType.
// Unrecognized values fall back to Unknown, the restrictive default.
func ParseFilesystemType(s string) FilesystemType {
	switch strings.ToLower(s) {
	case "fat", "fat32", "vfat", "msdos":
		return FilesystemFAT
	case "exfat":
		return FilesystemExFAT
	case "ntfs":
		return FilesystemNTFS
	case "hfs", "hfs+", "apfs":
		return FilesystemHFS
	case "ext", "ext2", "ext3", "ext4":
		return FilesystemExt
	default:
		return FilesystemUnknown
	}
}

// Reserved sets, one per policy. Percent is deliberately absent from
// every set; escaped names must survive re-escaping unchanged.
const (
	reservedWindows = `\/:?"<>|*`
	reservedHFS     = `/:`
	reservedPosix   = `/`
)

func reservedChars(t FilesystemType) string {
	switch t {
	case FilesystemExt:
		return reservedPosix
	case FilesystemHFS:
		return reservedHFS
	default:
		// FAT, exFAT, NTFS and the unknown fallback all take the full
		// Windows set.
		return reservedWindows
	}
}

const hexUpper = "0123456789ABCDEF"

// hexVal returns the value of a hex digit, or -1. Accepts both cases.
func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// Escape replaces every byte of name reserved on the target filesystem
// with a percent sign followed by its two-digit uppercase hex value.
// All other bytes pass through unchanged.
func Escape(name string, t FilesystemType) string {
	reserved := reservedChars(t)
	if !strings.ContainsAny(name, reserved) {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 8)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if strings.IndexByte(reserved, c) >= 0 {
			b.WriteByte('%')
			b.WriteByte(hexUpper[c>>4])
			b.WriteByte(hexUpper[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape decodes every percent escape in name back to its byte value.
// Escapes that would resurrect a control character (< 0x20) are kept
// verbatim, as is any percent sign not followed by two hex digits.
// Total over arbitrary input; never fails.
func Unescape(name string) string {
	if !strings.Contains(name, "%") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '%' && i+2 < len(name) {
			hi := hexVal(rune(name[i+1]))
			lo := hexVal(rune(name[i+2]))
			if hi >= 0 && lo >= 0 && hi<<4|lo >= 0x20 {
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
