package domain

import (
	"errors"
	"strings"
)

// Role is the authorization level the user signs in as.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// DefaultDisplayName is stored when the server does not report a name.
const DefaultDisplayName = "User"

var ErrIncompleteSession = errors.New("session is incomplete")

// ParseRole maps a wire value to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Session is the authenticated identity held by the client.
// It is either complete or treated as absent.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Complete reports whether all identity fields are set.
// Name is display-only and does not participate.
func (s Session) Complete() bool {
	return s.Token != "" && s.Email != "" && s.Role.Valid()
}

// IsAdmin reports whether the session bypasses the profile gate.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
