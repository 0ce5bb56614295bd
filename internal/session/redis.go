package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahabhq/console/internal/common/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements Store using Redis. Expiry rides on the key TTL,
// which Get renews so an active session keeps sliding forward.
type RedisStore struct {
	logger *zap.Logger
	client *redis.Client
	sealer *Sealer
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-based session store
func NewRedisStore(ctx context.Context, logger *zap.Logger, sealer *Sealer, cfg config.SessionRedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "session:"
	} else if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return &RedisStore{
		logger: logger.Named("session.store.redis"),
		client: client,
		sealer: sealer,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Create implements Store.Create
func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	sealed, err := s.sealer.sealSession(sess)
	if err != nil {
		return err
	}
	if sealed.ExpiresAt.IsZero() {
		sealed.ExpiresAt = time.Now().Add(s.ttl)
	}

	data, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(sess.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Get implements Store.Get
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := s.key(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	// Renew the key TTL so active sessions do not expire mid-use.
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to renew session TTL",
			zap.String("id", id),
			zap.Error(err))
	}

	var sealed Session
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	opened, err := s.sealer.openSession(&sealed)
	if err != nil {
		// Tampered or sealed under a lost key. Drop it.
		s.logger.Warn("dropping unreadable session", zap.String("id", id), zap.Error(err))
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("failed to delete unreadable session",
				zap.String("id", id),
				zap.Error(delErr))
		}
		return nil, ErrSessionNotFound
	}
	return opened, nil
}

// Update implements Store.Update
func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	sealed, err := s.sealer.sealSession(sess)
	if err != nil {
		return err
	}
	if sealed.ExpiresAt.IsZero() {
		sealed.ExpiresAt = time.Now().Add(s.ttl)
	}

	data, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := s.key(sess.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check session in Redis: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to update session in Redis: %w", err)
	}
	return nil
}

// Delete implements Store.Delete
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

// Purge implements Store.Purge. Redis expires keys on its own, so there
// is nothing to sweep here.
func (s *RedisStore) Purge(context.Context) (int, error) {
	return 0, nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
