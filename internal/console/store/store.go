package store

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound is returned when no value exists for a
// (username, key) pair.
var ErrPreferenceNotFound = errors.New("preference not found")

// Store persists per-user console state that has no upstream home, such
// as dashboard preferences and the backup schedule. Usernames are the
// upstream admin usernames plus the reserved scheduler identity.
type Store interface {
	// Get returns the value stored for the pair, or ErrPreferenceNotFound.
	Get(ctx context.Context, username, key string) (string, error)

	// List returns every preference stored for the user.
	List(ctx context.Context, username string) (map[string]string, error)

	// Put creates or replaces the value for the pair.
	Put(ctx context.Context, username, key, value string) error

	// Delete removes the pair. Deleting an absent pair is not an error.
	Delete(ctx context.Context, username, key string) error
}
