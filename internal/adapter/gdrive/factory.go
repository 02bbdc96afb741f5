package gdrive

import (
	"context"

	"github.com/skovgaard/driftsync/internal/adapter"
	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// Factory creates Drive adapters from endpoint configuration. It needs
// the data directory where tokens were stored by the auth flow.
type Factory struct {
	DataDir      string
	ClientID     string
	ClientSecret string
}

// Supports reports whether the transport type is gdrive.
func (Factory) Supports(t domain.TransportType) bool {
	return t == domain.TransportGDrive
}

// Create builds an adapter rooted at the endpoint's Drive folder using
// the transport's persisted token.
func (f Factory) Create(ctx context.Context, transport domain.Transport, endpoint domain.Endpoint) (adapter.Adapter, error) {
	auth := NewAuthenticator(f.ClientID, f.ClientSecret, f.DataDir, transport.Name)
	ts, err := auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return New(ctx, ts, fspath.RemotePath(endpoint.Root))
}
