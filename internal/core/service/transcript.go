package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/render"
)

// Entry is one appended message together with its rendered fragments.
type Entry struct {
	Message   domain.ChatMessage
	Fragments []render.Fragment
}

// Transcript is the append-only message log of one widget surface.
type Transcript struct {
	mu       sync.Mutex
	entries  []Entry
	onAppend func(Entry)
	now      func() time.Time
}

func NewTranscript() *Transcript {
	return &Transcript{now: time.Now}
}

// OnAppend registers fn to run after every append, outside the lock.
func (t *Transcript) OnAppend(fn func(Entry)) {
	t.mu.Lock()
	t.onAppend = fn
	t.mu.Unlock()
}

func (t *Transcript) append(author domain.Author, body string, structured *domain.ReplyPayload, frags []render.Fragment) Entry {
	t.mu.Lock()
	e := Entry{
		Message: domain.ChatMessage{
			ID:         uuid.NewString(),
			Author:     author,
			Body:       body,
			Structured: structured,
			At:         t.now(),
		},
		Fragments: frags,
	}
	t.entries = append(t.entries, e)
	hook := t.onAppend
	t.mu.Unlock()

	if hook != nil {
		hook(e)
	}
	return e
}

// Snapshot returns a copy of the entries in append order.
func (t *Transcript) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
