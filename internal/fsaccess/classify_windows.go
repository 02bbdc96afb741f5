//go:build windows

package fsaccess

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isNameTooLong reports whether err was caused by a path component
// exceeding the platform limit.
func isNameTooLong(err error) bool {
	return errors.Is(err, windows.ERROR_FILENAME_EXCED_RANGE) ||
		errors.Is(err, windows.ERROR_BUFFER_OVERFLOW)
}
