package access

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/config"
	"github.com/sahabhq/console/internal/session"
)

// IdentityFetcher loads the current user from the upstream platform with
// the session's access token.
type IdentityFetcher interface {
	CurrentUser(ctx context.Context, accessToken string) (*User, error)
}

// Resolver answers "who is this session" with a small TTL cache in front
// of the upstream current-user endpoint. Entries are keyed by session ID
// so a revoked session never serves another one's identity.
type Resolver struct {
	logger  *zap.Logger
	fetcher IdentityFetcher
	cache   *expirable.LRU[string, *User]
}

// NewResolver creates a resolver with the configured cache size and TTL.
func NewResolver(logger *zap.Logger, fetcher IdentityFetcher, cfg config.IdentityConfig) *Resolver {
	return &Resolver{
		logger:  logger.Named("access.resolver"),
		fetcher: fetcher,
		cache:   expirable.NewLRU[string, *User](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Identity returns the user behind the session, from cache when fresh.
// Errors from the upstream fetch are returned as-is so guards can fail
// closed and distinguish auth failures from outages.
func (r *Resolver) Identity(ctx context.Context, sess *session.Session) (*User, error) {
	if user, ok := r.cache.Get(sess.ID); ok {
		return user, nil
	}

	user, err := r.fetcher.CurrentUser(ctx, sess.AccessToken)
	if err != nil {
		return nil, err
	}

	r.cache.Add(sess.ID, user)
	r.logger.Debug("resolved identity",
		zap.String("session_id", sess.ID),
		zap.String("username", user.Username),
		zap.Bool("is_superuser", user.IsSuperuser))
	return user, nil
}

// Invalidate drops the cached identity for a session. Called on logout
// and whenever the upstream reports the session's token as invalid.
func (r *Resolver) Invalidate(sessionID string) {
	r.cache.Remove(sessionID)
}
