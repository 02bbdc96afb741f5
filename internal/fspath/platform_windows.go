//go:build windows

package fspath

// Native returns the path conventions of the build target.
func Native() PlatformPathOps {
	return WindowsPathOps{}
}
