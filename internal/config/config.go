package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// Config represents the complete configuration for driftsync.
type Config struct {
	// Transports define storage backend configurations
	Transports []domain.Transport `mapstructure:"transports"`

	// Endpoints define specific locations within transports
	Endpoints []domain.Endpoint `mapstructure:"endpoints"`

	// DataDir holds state databases and tokens. Defaults to the user
	// config directory.
	DataDir string `mapstructure:"data_dir"`

	// Log configures the logger
	Log LogConfig `mapstructure:"log"`
}

// LogConfig is the logging section of the configuration file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks if the configuration is complete and consistent.
func (c *Config) Validate() error {
	transportNames := make(map[string]bool)
	for _, t := range c.Transports {
		if t.Name == "" {
			return fmt.Errorf("%w: transport name cannot be empty", domain.ErrConfigInvalid)
		}
		if transportNames[t.Name] {
			return fmt.Errorf("%w: duplicate transport name: %s", domain.ErrConfigInvalid, t.Name)
		}
		if !t.Type.IsValid() {
			return fmt.Errorf("%w: invalid transport type: %s", domain.ErrConfigInvalid, t.Type)
		}
		transportNames[t.Name] = true
	}

	endpointNames := make(map[string]bool)
	for _, e := range c.Endpoints {
		if e.Name == "" {
			return fmt.Errorf("%w: endpoint name cannot be empty", domain.ErrConfigInvalid)
		}
		if endpointNames[e.Name] {
			return fmt.Errorf("%w: duplicate endpoint name: %s", domain.ErrConfigInvalid, e.Name)
		}
		if e.Transport == "" {
			return fmt.Errorf("%w: endpoint %s has no transport", domain.ErrConfigInvalid, e.Name)
		}
		if !transportNames[e.Transport] {
			return fmt.Errorf("%w: endpoint %s references unknown transport: %s",
				domain.ErrTransportNotFound, e.Name, e.Transport)
		}
		if e.Root == "" {
			return fmt.Errorf("%w: endpoint %s has no root path", domain.ErrConfigInvalid, e.Name)
		}
		if e.Filesystem != "" {
			if fspath.ParseFilesystemType(e.Filesystem) == fspath.FilesystemUnknown {
				return fmt.Errorf("%w: endpoint %s has unknown filesystem: %s",
					domain.ErrConfigInvalid, e.Name, e.Filesystem)
			}
		}
		endpointNames[e.Name] = true
	}

	return nil
}

// GetTransport returns a transport by name.
func (c *Config) GetTransport(name string) (*domain.Transport, error) {
	for i := range c.Transports {
		if c.Transports[i].Name == name {
			return &c.Transports[i], nil
		}
	}
	return nil, domain.ErrTransportNotFound
}

// GetEndpoint returns an endpoint by name.
func (c *Config) GetEndpoint(name string) (*domain.Endpoint, error) {
	for i := range c.Endpoints {
		if c.Endpoints[i].Name == name {
			return &c.Endpoints[i], nil
		}
	}
	return nil, domain.ErrEndpointNotFound
}

// ExpandPath expands ~ and environment variables in a path.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
