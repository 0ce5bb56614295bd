package platform

import (
	"context"
	"net/url"
)

// ListPayments returns payments, optionally filtered by creation date.
// Empty bounds are omitted from the query.
func (c *Client) ListPayments(ctx context.Context, token, dateFrom, dateTo string) ([]Payment, error) {
	query := url.Values{}
	if dateFrom != "" {
		query.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		query.Set("date_to", dateTo)
	}
	data, err := c.get(ctx, token, "/payments/", query)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Payment](data)
	return items, err
}

// ListInvoices returns all invoices.
func (c *Client) ListInvoices(ctx context.Context, token string) ([]Invoice, error) {
	data, err := c.get(ctx, token, "/invoices/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Invoice](data)
	return items, err
}
