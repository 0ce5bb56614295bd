package platform

import (
	"context"
	"fmt"
)

// ListPlans returns all subscription plans, hidden ones included.
func (c *Client) ListPlans(ctx context.Context, token string) ([]Plan, error) {
	data, err := c.get(ctx, token, "/plans/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Plan](data)
	return items, err
}

// CreatePlan creates a plan and returns the stored record.
func (c *Client) CreatePlan(ctx context.Context, token string, plan Plan) (*Plan, error) {
	data, err := c.post(ctx, token, "/plans/", plan)
	if err != nil {
		return nil, err
	}
	return decodeOne[Plan](data)
}

// UpdatePlan updates a plan and returns the stored record.
func (c *Client) UpdatePlan(ctx context.Context, token string, id int64, plan Plan) (*Plan, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/plans/%d/", id), plan)
	if err != nil {
		return nil, err
	}
	return decodeOne[Plan](data)
}

// DeletePlan deletes a plan.
func (c *Client) DeletePlan(ctx context.Context, token string, id int64) error {
	_, err := c.delete(ctx, token, fmt.Sprintf("/plans/%d/", id))
	return err
}
