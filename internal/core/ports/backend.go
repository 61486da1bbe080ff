package ports

import (
	"context"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// Credentials is the login form after trimming.
type Credentials struct {
	Email    string
	Password string
	Role     domain.Role
}

// Registration is the sign-up form after trimming.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is a successful login or register response.
type AuthResult struct {
	Token            string
	Email            string
	Name             string
	Role             domain.Role
	ProfileCompleted bool
}

// Session converts the result into the value persisted by a SessionStore.
func (r AuthResult) Session() domain.Session {
	name := r.Name
	if name == "" {
		name = domain.DefaultDisplayName
	}
	return domain.Session{Token: r.Token, Email: r.Email, Name: name, Role: r.Role}
}

// AuthBackend talks to /api/auth. Errors are *domain.UserError.
type AuthBackend interface {
	Login(ctx context.Context, c Credentials) (*AuthResult, error)
	Register(ctx context.Context, r Registration) (*AuthResult, error)
}

// ProfileBackend reports whether the bearer has a completed health profile.
type ProfileBackend interface {
	CheckProfile(ctx context.Context, token string) (bool, error)
}

// ChatBackend forwards a message to the assistant endpoint.
type ChatBackend interface {
	Query(ctx context.Context, token, message string) (*domain.ReplyPayload, error)
}
