package platform

import (
	"context"
	"fmt"
)

// ListBroadcasts returns all broadcast messages.
func (c *Client) ListBroadcasts(ctx context.Context, token string) ([]Broadcast, error) {
	data, err := c.get(ctx, token, "/broadcasts/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Broadcast](data)
	return items, err
}

// CreateBroadcast creates a broadcast in draft or scheduled state.
func (c *Client) CreateBroadcast(ctx context.Context, token string, b Broadcast) (*Broadcast, error) {
	data, err := c.post(ctx, token, "/broadcasts/", b)
	if err != nil {
		return nil, err
	}
	return decodeOne[Broadcast](data)
}

// UpdateBroadcast updates a broadcast and returns the stored record.
func (c *Client) UpdateBroadcast(ctx context.Context, token string, id int64, b Broadcast) (*Broadcast, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/broadcasts/%d/", id), b)
	if err != nil {
		return nil, err
	}
	return decodeOne[Broadcast](data)
}

// DeleteBroadcast deletes a broadcast.
func (c *Client) DeleteBroadcast(ctx context.Context, token string, id int64) error {
	_, err := c.delete(ctx, token, fmt.Sprintf("/broadcasts/%d/", id))
	return err
}

// SendBroadcast dispatches a broadcast to its targets.
func (c *Client) SendBroadcast(ctx context.Context, token string, id int64) (*Broadcast, error) {
	data, err := c.post(ctx, token, fmt.Sprintf("/broadcasts/%d/send/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Broadcast](data)
}
