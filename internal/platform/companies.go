package platform

import (
	"context"
	"fmt"
)

// ListCompanies returns all customer companies.
func (c *Client) ListCompanies(ctx context.Context, token string) ([]Company, error) {
	data, err := c.get(ctx, token, "/companies/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Company](data)
	return items, err
}

// GetCompany returns one company by ID.
func (c *Client) GetCompany(ctx context.Context, token string, id int64) (*Company, error) {
	data, err := c.get(ctx, token, fmt.Sprintf("/companies/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Company](data)
}

// CreateCompany creates a company and returns the stored record.
func (c *Client) CreateCompany(ctx context.Context, token string, company Company) (*Company, error) {
	data, err := c.post(ctx, token, "/companies/", company)
	if err != nil {
		return nil, err
	}
	return decodeOne[Company](data)
}

// UpdateCompany updates a company and returns the stored record.
func (c *Client) UpdateCompany(ctx context.Context, token string, id int64, company Company) (*Company, error) {
	data, err := c.put(ctx, token, fmt.Sprintf("/companies/%d/", id), company)
	if err != nil {
		return nil, err
	}
	return decodeOne[Company](data)
}
