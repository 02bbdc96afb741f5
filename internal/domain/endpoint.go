package domain

// TransportType identifies the storage backend type
type TransportType string

const (
	TransportLocal  TransportType = "local"
	TransportGDrive TransportType = "gdrive"
)

// IsValid checks if the transport type is a known value
func (t TransportType) IsValid() bool {
	switch t {
	case TransportLocal, TransportGDrive:
		return true
	}
	return false
}

// Transport defines a storage backend configuration
type Transport struct {
	// Name is the unique identifier
	Name string `mapstructure:"name"`

	// Type identifies the backend
	Type TransportType `mapstructure:"type"`

	// Credentials path for auth (gdrive)
	Credentials string `mapstructure:"credentials"`
}

// Endpoint defines a specific location within a transport
type Endpoint struct {
	// Name is the unique identifier
	Name string `mapstructure:"name"`

	// Transport name reference
	Transport string `mapstructure:"transport"`

	// Root path within the transport
	Root string `mapstructure:"root"`

	// Filesystem overrides volume detection for local endpoints
	// (fat, exfat, ntfs, hfs, ext). Empty means detect, falling back
	// to the most restrictive escaping policy.
	Filesystem string `mapstructure:"filesystem"`

	// CaseInsensitive forces the comparison mode for this endpoint.
	// Nil means follow the platform default.
	CaseInsensitive *bool `mapstructure:"case_insensitive"`
}
