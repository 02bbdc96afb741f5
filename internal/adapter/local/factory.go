package local

import (
	"context"

	"github.com/skovgaard/driftsync/internal/adapter"
	"github.com/skovgaard/driftsync/internal/config"
	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// Factory creates local adapters from endpoint configuration.
type Factory struct{}

// Supports reports whether the transport type is local.
func (Factory) Supports(t domain.TransportType) bool {
	return t == domain.TransportLocal
}

// Create builds an adapter rooted at the endpoint's directory, honoring
// an explicit filesystem override when the endpoint carries one.
func (Factory) Create(ctx context.Context, transport domain.Transport, endpoint domain.Endpoint) (adapter.Adapter, error) {
	root := config.ExpandPath(endpoint.Root)
	if endpoint.Filesystem != "" {
		return NewWithFilesystem(root, fspath.ParseFilesystemType(endpoint.Filesystem))
	}
	return New(root)
}
