package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// janitorInterval is how often the memory store sweeps expired sessions.
const janitorInterval = time.Minute

// MemoryStore implements Store using in-memory storage
type MemoryStore struct {
	logger   *zap.Logger
	sealer   *Sealer
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory session store. The janitor
// goroutine runs until ctx is cancelled.
func NewMemoryStore(ctx context.Context, logger *zap.Logger, sealer *Sealer, ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		logger:   logger.Named("session.store.memory"),
		sealer:   sealer,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
	go s.janitor(ctx)
	return s
}

func (s *MemoryStore) janitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.Purge(ctx); err == nil && n > 0 {
				s.logger.Debug("purged expired sessions", zap.Int("count", n))
			}
		}
	}
}

// Create implements Store.Create
func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	sealed, err := s.sealer.sealSession(sess)
	if err != nil {
		return err
	}
	if sealed.ExpiresAt.IsZero() {
		sealed.ExpiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return ErrSessionExists
	}
	s.sessions[sess.ID] = sealed
	return nil
}

// Get implements Store.Get. Reading a session slides its expiry forward.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := time.Now()
	if sess.Expired(now) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.ExpiresAt = now.Add(s.ttl)
	sess.LastSeenAt = now

	opened, err := s.sealer.openSession(sess)
	if err != nil {
		// Tampered or sealed under a lost key. Drop it.
		s.logger.Warn("dropping unreadable session", zap.String("id", id), zap.Error(err))
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return opened, nil
}

// Update implements Store.Update
func (s *MemoryStore) Update(_ context.Context, sess *Session) error {
	sealed, err := s.sealer.sealSession(sess)
	if err != nil {
		return err
	}
	if sealed.ExpiresAt.IsZero() {
		sealed.ExpiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[sess.ID] = sealed
	return nil
}

// Delete implements Store.Delete
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Purge implements Store.Purge
func (s *MemoryStore) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	purged := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
