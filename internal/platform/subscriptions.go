package platform

import (
	"context"
	"fmt"
)

// ListSubscriptions returns all subscription records, historical ones
// included.
func (c *Client) ListSubscriptions(ctx context.Context, token string) ([]Subscription, error) {
	data, err := c.get(ctx, token, "/subscriptions/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Subscription](data)
	return items, err
}

// CreateSubscription creates a subscription and returns the stored record.
func (c *Client) CreateSubscription(ctx context.Context, token string, sub Subscription) (*Subscription, error) {
	data, err := c.post(ctx, token, "/subscriptions/", sub)
	if err != nil {
		return nil, err
	}
	return decodeOne[Subscription](data)
}

// UpdateSubscription updates a subscription and returns the stored record.
func (c *Client) UpdateSubscription(ctx context.Context, token string, id int64, sub Subscription) (*Subscription, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/subscriptions/%d/", id), sub)
	if err != nil {
		return nil, err
	}
	return decodeOne[Subscription](data)
}

// ActivateSubscription marks a subscription active.
func (c *Client) ActivateSubscription(ctx context.Context, token string, id int64) error {
	_, err := c.post(ctx, token, fmt.Sprintf("/subscriptions/%d/activate/", id), nil)
	return err
}

// DeactivateSubscription marks a subscription inactive.
func (c *Client) DeactivateSubscription(ctx context.Context, token string, id int64) error {
	_, err := c.post(ctx, token, fmt.Sprintf("/subscriptions/%d/deactivate/", id), nil)
	return err
}
