// Package memstore holds in-process stores for tests, embedders and the
// development backend when no database is configured.
package memstore

import (
	"context"
	"sync"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// SessionStore keeps the four session entries in a map.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]string)}
}

// Save replaces every entry under the write lock.
func (s *SessionStore) Save(_ context.Context, sess domain.Session) error {
	if !sess.Complete() {
		return domain.ErrIncompleteSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]string{
		ports.KeyToken: sess.Token,
		ports.KeyEmail: sess.Email,
		ports.KeyName:  sess.Name,
		ports.KeyRole:  string(sess.Role),
	}
	return nil
}

func (s *SessionStore) Load(_ context.Context) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ports.SessionFromEntries(s.entries)
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return nil
}

// Delete removes a single entry, leaving a partial session behind.
func (s *SessionStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
