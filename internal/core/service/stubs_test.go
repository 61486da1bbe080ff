package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

type stubAuthBackend struct {
	mu        sync.Mutex
	result    *ports.AuthResult
	err       error
	logins    []ports.Credentials
	registers []ports.Registration
}

func (b *stubAuthBackend) Login(_ context.Context, c ports.Credentials) (*ports.AuthResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logins = append(b.logins, c)
	if b.err != nil {
		return nil, b.err
	}
	res := *b.result
	return &res, nil
}

func (b *stubAuthBackend) Register(_ context.Context, r ports.Registration) (*ports.AuthResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registers = append(b.registers, r)
	if b.err != nil {
		return nil, b.err
	}
	res := *b.result
	return &res, nil
}

func (b *stubAuthBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.logins) + len(b.registers)
}

type recordingNav struct {
	visited []domain.Landing
}

func (n *recordingNav) Navigate(to domain.Landing) { n.visited = append(n.visited, to) }

func (n *recordingNav) last() domain.Landing {
	if len(n.visited) == 0 {
		return ""
	}
	return n.visited[len(n.visited)-1]
}

type recordingSlot struct {
	shown   []string
	cleared int
}

func (s *recordingSlot) Show(msg string) { s.shown = append(s.shown, msg) }
func (s *recordingSlot) Clear()          { s.cleared++ }

type recordingAlerter struct {
	alerts []string
}

func (a *recordingAlerter) Alert(msg string) { a.alerts = append(a.alerts, msg) }

type stubProfileBackend struct {
	has    bool
	err    error
	tokens []string
}

func (b *stubProfileBackend) CheckProfile(_ context.Context, token string) (bool, error) {
	b.tokens = append(b.tokens, token)
	return b.has, b.err
}

// stubChat answers from a function so tests can block or fail per message.
type stubChat struct {
	mu     sync.Mutex
	answer func(token, message string) (*domain.ReplyPayload, error)
	seen   []string
}

func (c *stubChat) Query(_ context.Context, token, message string) (*domain.ReplyPayload, error) {
	c.mu.Lock()
	c.seen = append(c.seen, message)
	answer := c.answer
	c.mu.Unlock()
	if answer == nil {
		return nil, errors.New("no answer configured")
	}
	return answer(token, message)
}

func (c *stubChat) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Save(context.Context, domain.Session) error { return errors.New("disk full") }
func (failingStore) Load(context.Context) (domain.Session, bool) {
	return domain.Session{}, false
}
func (failingStore) Clear(context.Context) error { return errors.New("disk full") }
