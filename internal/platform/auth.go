package platform

import (
	"context"

	"github.com/sahabhq/console/internal/access"
)

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the upstream token response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for an upstream token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	data, err := c.post(ctx, "", "/auth/login/", creds)
	if err != nil {
		return nil, err
	}
	return decodeOne[TokenPair](data)
}

// Refresh rotates the upstream token pair using the refresh token. Some
// deployments return only a new access token; the refresh field is then
// empty and the caller keeps the old one.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	data, err := c.post(ctx, "", "/auth/refresh/", map[string]string{"refresh": refreshToken})
	if err != nil {
		return nil, err
	}
	return decodeOne[TokenPair](data)
}

// CurrentUser fetches the identity behind an access token. Satisfies
// access.IdentityFetcher.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*access.User, error) {
	data, err := c.get(ctx, accessToken, "/auth/current-user/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[access.User](data)
}
