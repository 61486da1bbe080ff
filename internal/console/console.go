// Package console adapts the host ports to a text terminal.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/render"
)

var (
	_ ports.Navigator = (*Navigator)(nil)
	_ ports.Alerter   = (*Alerter)(nil)
	_ ports.ErrorSlot = (*ErrorSlot)(nil)
)

// Navigator prints page changes and remembers the latest one so the host
// can act on it (e.g. switch to the full-page assistant).
type Navigator struct {
	out  io.Writer
	term *render.Terminal

	mu   sync.Mutex
	last domain.Landing
}

func NewNavigator(out io.Writer, term *render.Terminal) *Navigator {
	return &Navigator{out: out, term: term}
}

func (n *Navigator) Navigate(to domain.Landing) {
	n.mu.Lock()
	n.last = to
	n.mu.Unlock()
	fmt.Fprintln(n.out, n.term.Notice(fmt.Sprintf("-> %s.html", to)))
}

// Last returns the most recent landing, or "" if none.
func (n *Navigator) Last() domain.Landing {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Alerter prints alerts immediately.
type Alerter struct {
	out  io.Writer
	term *render.Terminal
}

func NewAlerter(out io.Writer, term *render.Terminal) *Alerter {
	return &Alerter{out: out, term: term}
}

func (a *Alerter) Alert(msg string) {
	fmt.Fprintln(a.out, a.term.Error("! "+msg))
}

// ErrorSlot holds the inline error of one form and prints it when shown.
type ErrorSlot struct {
	out  io.Writer
	term *render.Terminal

	mu  sync.Mutex
	msg string
}

func NewErrorSlot(out io.Writer, term *render.Terminal) *ErrorSlot {
	return &ErrorSlot{out: out, term: term}
}

func (s *ErrorSlot) Show(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
	fmt.Fprintln(s.out, s.term.Error(msg))
}

func (s *ErrorSlot) Clear() {
	s.mu.Lock()
	s.msg = ""
	s.mu.Unlock()
}

// Message returns the text currently shown, "" when cleared.
func (s *ErrorSlot) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}
