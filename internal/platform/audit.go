package platform

import (
	"context"
	"net/url"
	"strconv"
)

// ListAuditLogs returns one page of the audit trail plus the total
// count. Page numbering is 1-based; zero values are omitted so the
// upstream default applies.
func (c *Client) ListAuditLogs(ctx context.Context, token string, page, pageSize int) ([]AuditLog, int, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	data, err := c.get(ctx, token, "/audit-logs/", query)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[AuditLog](data)
}
