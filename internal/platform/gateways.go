package platform

import (
	"context"
	"fmt"
)

// ListGateways returns all payment gateway integrations.
func (c *Client) ListGateways(ctx context.Context, token string) ([]Gateway, error) {
	data, err := c.get(ctx, token, "/payment-gateways/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Gateway](data)
	return items, err
}

// UpdateGateway updates a gateway's credentials/config and returns the
// stored record.
func (c *Client) UpdateGateway(ctx context.Context, token string, id int64, gw Gateway) (*Gateway, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/payment-gateways/%d/", id), gw)
	if err != nil {
		return nil, err
	}
	return decodeOne[Gateway](data)
}

// EnableGateway enables a gateway.
func (c *Client) EnableGateway(ctx context.Context, token string, id int64) error {
	_, err := c.post(ctx, token, fmt.Sprintf("/payment-gateways/%d/enable/", id), nil)
	return err
}

// DisableGateway disables a gateway.
func (c *Client) DisableGateway(ctx context.Context, token string, id int64) error {
	_, err := c.post(ctx, token, fmt.Sprintf("/payment-gateways/%d/disable/", id), nil)
	return err
}
