package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrRoleMismatch       = errors.New("Invalid role")
	ErrWeakPassword       = errors.New("Password must include uppercase, lowercase, number, and special character")
	ErrShortPassword      = errors.New("Password must be at least 8 characters")
	ErrForbidden          = errors.New("access forbidden")
)

// OnboardingDone is the onboarding step of a completed health profile.
const OnboardingDone = 3

// User is an account held by the development backend.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	ProfileCompleted bool      `json:"profile_completed"`
	OnboardingStep   int       `json:"onboarding_step"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
