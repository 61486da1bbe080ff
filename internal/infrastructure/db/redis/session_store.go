package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// SessionStore keeps the session in one Redis hash per origin.
// Key format: session:<origin>
type SessionStore struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, origin string, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, key: "session:" + origin, log: log}
}

// Save replaces the hash inside MULTI/EXEC so readers never see a mix of
// old and new fields.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	if !sess.Complete() {
		return domain.ErrIncompleteSession
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key,
			ports.KeyToken, sess.Token,
			ports.KeyEmail, sess.Email,
			ports.KeyName, sess.Name,
			ports.KeyRole, string(sess.Role),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, bool) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("session load failed")
		return domain.Session{}, false
	}
	return ports.SessionFromEntries(entries)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
