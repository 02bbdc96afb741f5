package domain

import "errors"

// Adapter and filesystem-collaborator errors
var (
	// ErrNotFound indicates the requested entry does not exist
	ErrNotFound = errors.New("entry not found")

	// ErrAlreadyExists indicates the entry already exists
	ErrAlreadyExists = errors.New("entry already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFile indicates expected a file but got a directory
	ErrNotFile = errors.New("not a file")

	// ErrNameTooLong indicates a path component exceeds the platform's
	// length limit. Operations failing for any other reason never carry
	// this kind, so callers can distinguish "retry with a shorter name"
	// from "this path will never succeed".
	ErrNameTooLong = errors.New("name exceeds filesystem limits")

	// ErrReservedName indicates a candidate name collides with a name
	// the target filesystem reserves
	ErrReservedName = errors.New("name is reserved by the filesystem")
)

// Config errors
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")

	// ErrEndpointNotFound indicates referenced endpoint doesn't exist
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrTransportNotFound indicates referenced transport doesn't exist
	ErrTransportNotFound = errors.New("transport not found")
)

// State errors
var (
	// ErrStateCorrupt indicates the node database cannot be read
	ErrStateCorrupt = errors.New("state database corrupt")
)
