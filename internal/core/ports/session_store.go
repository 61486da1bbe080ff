package ports

import (
	"context"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// Persisted entry names, shared by every SessionStore backend.
const (
	KeyToken = "token"
	KeyEmail = "email"
	KeyName  = "hb_user_name"
	KeyRole  = "role"
)

// SessionStore persists the current session of one browsing context.
type SessionStore interface {
	// Save writes every entry as one update. Incomplete sessions are
	// rejected with domain.ErrIncompleteSession.
	Save(ctx context.Context, s domain.Session) error
	// Load returns false unless a complete session is stored.
	Load(ctx context.Context) (domain.Session, bool)
	// Clear removes all entries. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// SessionFromEntries rebuilds a session from persisted entries. A partial
// or unrecognised set of entries is reported as no session.
func SessionFromEntries(entries map[string]string) (domain.Session, bool) {
	role, ok := domain.ParseRole(entries[KeyRole])
	if !ok {
		return domain.Session{}, false
	}
	sess := domain.Session{
		Token: entries[KeyToken],
		Email: entries[KeyEmail],
		Name:  entries[KeyName],
		Role:  role,
	}
	if !sess.Complete() {
		return domain.Session{}, false
	}
	return sess, true
}
