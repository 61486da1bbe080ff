package ports

import (
	"context"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// UserRepository stores accounts of the development backend.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// MarkProfileCompleted flags the onboarding as finished.
	MarkProfileCompleted(ctx context.Context, id string) error
}

// AccountService is the development backend's auth use-case layer.
type AccountService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error)
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	CompleteProfile(ctx context.Context, userID string) error
}

// ReplyEngine answers chatbot queries on the development backend.
type ReplyEngine interface {
	Reply(ctx context.Context, user *domain.User, message string) ReplyDocument
}

// ReplyDocument is the wire-shaped chatbot answer produced by a ReplyEngine.
type ReplyDocument struct {
	Type            string        `json:"type,omitempty"`
	Text            string        `json:"text"`
	ExplanationCard *CardDocument `json:"explanation_card,omitempty"`
	Chips           []string      `json:"chips,omitempty"`
}

// CardDocument is the wire form of an explanation card.
type CardDocument struct {
	Title  string         `json:"title"`
	Chips  []ChipDocument `json:"chips"`
	RuleID string         `json:"rule_id,omitempty"`
}

// ChipDocument is the wire form of an insight chip.
type ChipDocument struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
