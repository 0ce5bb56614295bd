package backup

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/sahabhq/console/internal/common/config"
)

// TokenSource yields the bearer token for unattended upstream calls,
// where no admin session exists to borrow from.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// NewTokenSource selects the service token strategy: OAuth2 client
// credentials when a token URL is configured, otherwise the static API
// key (which may be empty; the upstream client then authenticates with
// its X-Api-Key header alone).
func NewTokenSource(cfg config.ServiceAuthConfig, apiKey string) TokenSource {
	if cfg.TokenURL == "" {
		return staticTokenSource(apiKey)
	}
	return &clientCredentialsSource{
		cfg: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		},
	}
}

type staticTokenSource string

func (s staticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

type clientCredentialsSource struct {
	cfg *clientcredentials.Config
}

func (s *clientCredentialsSource) Token(ctx context.Context) (string, error) {
	tok, err := s.cfg.TokenSource(ctx).Token()
	if err != nil {
		return "", fmt.Errorf("service token: %w", err)
	}
	return tok.AccessToken, nil
}
