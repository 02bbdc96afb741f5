package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// Authenticator manages the OAuth2 flow and token persistence for a
// Drive transport. Tokens are kept per transport name so multiple
// accounts can coexist.
type Authenticator struct {
	config    *oauth2.Config
	tokenPath string
}

// NewAuthenticator builds an authenticator for the given client
// credentials, storing tokens under dir/name.token.json.
func NewAuthenticator(clientID, clientSecret, dir, name string) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		},
		tokenPath: filepath.Join(dir, name+".token.json"),
	}
}

// AuthURL returns the URL the user must visit to authorize access.
func (a *Authenticator) AuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and persists it.
func (a *Authenticator) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return a.saveToken(token)
}

// TokenSource returns a self-refreshing token source backed by the
// persisted token. It fails if no token has been stored yet.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := a.loadToken()
	if err != nil {
		return nil, fmt.Errorf("no stored token, run the auth flow first: %w", err)
	}
	return a.config.TokenSource(ctx, token), nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", a.tokenPath, err)
	}
	return &token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(a.tokenPath, data, 0o600)
}
