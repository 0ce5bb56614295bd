package session

import (
	"context"
	"fmt"
	"time"
)

// Session holds the server-side state of a signed-in console user. The
// upstream access and refresh tokens never leave the process unsealed;
// store implementations encrypt them before persisting.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Lang         string    `json:"lang,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// clone returns a shallow copy so stores never hand out their internal state.
func (s *Session) clone() *Session {
	cp := *s
	return &cp
}

// Store manages the lifecycle and lookup of console sessions.
type Store interface {
	// Create registers a new session. The ID must be unique.
	Create(ctx context.Context, sess *Session) error

	// Get retrieves a session by ID. Expired or tampered sessions are
	// reported as ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces the stored session, e.g. after a token refresh.
	Update(ctx context.Context, sess *Session) error

	// Delete removes a session by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Purge drops expired sessions and returns how many were removed.
	Purge(ctx context.Context) (int, error)
}

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = fmt.Errorf("session not found")

// ErrSessionExists is returned when creating a session with a taken ID
var ErrSessionExists = fmt.Errorf("session already exists")
