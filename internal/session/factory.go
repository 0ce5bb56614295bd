package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/config"
)

// Type represents the type of session store
type Type string

const (
	// TypeMemory represents in-memory session store
	TypeMemory Type = "memory"
	// TypeRedis represents Redis-based session store
	TypeRedis Type = "redis"
)

// NewStore creates a new session store based on configuration
func NewStore(ctx context.Context, logger *zap.Logger, cfg *config.SessionConfig) (Store, error) {
	logger.Info("Initializing session store", zap.String("type", cfg.Type))

	sealer, err := NewSealer(cfg.SealKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create session sealer: %w", err)
	}
	if cfg.SealKey == "" {
		logger.Warn("session.seal_key is empty, sessions will not survive a restart")
	}

	switch Type(cfg.Type) {
	case TypeMemory:
		return NewMemoryStore(ctx, logger, sealer, cfg.TTL), nil
	case TypeRedis:
		return NewRedisStore(ctx, logger, sealer, cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.Type)
	}
}
