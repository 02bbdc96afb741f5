//go:build !windows

package fsaccess

import (
	"errors"
	"syscall"
)

// isNameTooLong reports whether err was caused by a path component
// exceeding the platform limit.
func isNameTooLong(err error) bool {
	return errors.Is(err, syscall.ENAMETOOLONG)
}
