package platform

import (
	"context"
)

// GetSettings returns the upstream settings bag.
func (c *Client) GetSettings(ctx context.Context, token string) (Settings, error) {
	data, err := c.get(ctx, token, "/settings/", nil)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Settings](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UpdateSettings replaces the upstream settings bag and returns the
// stored version.
func (c *Client) UpdateSettings(ctx context.Context, token string, settings Settings) (Settings, error) {
	data, err := c.put(ctx, token, "/settings/", settings)
	if err != nil {
		return nil, err
	}
	out, err := decodeOne[Settings](data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
