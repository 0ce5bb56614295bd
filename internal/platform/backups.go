package platform

import (
	"context"
	"fmt"
)

// ListBackups returns all backup records, newest first per upstream
// ordering.
func (c *Client) ListBackups(ctx context.Context, token string) ([]Backup, error) {
	data, err := c.get(ctx, token, "/backups/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Backup](data)
	return items, err
}

// CreateBackup starts a new backup. Initiator is "manual" or
// "scheduled".
func (c *Client) CreateBackup(ctx context.Context, token, initiator string) (*Backup, error) {
	data, err := c.post(ctx, token, "/backups/", map[string]string{"initiator": initiator})
	if err != nil {
		return nil, err
	}
	return decodeOne[Backup](data)
}

// RestoreBackup restores the system from a backup.
func (c *Client) RestoreBackup(ctx context.Context, token string, id int64) error {
	_, err := c.post(ctx, token, fmt.Sprintf("/backups/%d/restore/", id), nil)
	return err
}

// DeleteBackup deletes a backup record.
func (c *Client) DeleteBackup(ctx context.Context, token string, id int64) error {
	_, err := c.delete(ctx, token, fmt.Sprintf("/backups/%d/", id))
	return err
}
