package platform

import (
	"context"
	"fmt"
)

// ListAdmins returns all limited administrator accounts.
func (c *Client) ListAdmins(ctx context.Context, token string) ([]Admin, error) {
	data, err := c.get(ctx, token, "/limited-admins/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Admin](data)
	return items, err
}

// CreateAdmin creates a limited administrator account.
func (c *Client) CreateAdmin(ctx context.Context, token string, admin Admin) (*Admin, error) {
	data, err := c.post(ctx, token, "/limited-admins/", admin)
	if err != nil {
		return nil, err
	}
	return decodeOne[Admin](data)
}

// UpdateAdmin updates a limited administrator account.
func (c *Client) UpdateAdmin(ctx context.Context, token string, id int64, admin Admin) (*Admin, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/limited-admins/%d/", id), admin)
	if err != nil {
		return nil, err
	}
	return decodeOne[Admin](data)
}

// DeleteAdmin deletes a limited administrator account.
func (c *Client) DeleteAdmin(ctx context.Context, token string, id int64) error {
	_, err := c.delete(ctx, token, fmt.Sprintf("/limited-admins/%d/", id))
	return err
}
