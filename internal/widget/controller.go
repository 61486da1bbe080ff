// Package widget drives the assistant widget lifecycle of one page.
package widget

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/service"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/metrics"
)

// DefaultNarrowWidth is the widest viewport that gets the full-page
// assistant instead of the overlay.
const DefaultNarrowWidth = 768

// Greeting opens the conversation of a visible widget.
const Greeting = "Hi! I'm your AI Health Assistant. Ask me anything about today's menu!"

type State int

const (
	Unmounted State = iota
	Hidden
	Collapsed
	Open
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	case Open:
		return "open"
	default:
		return "unmounted"
	}
}

// ProfileChecker decides whether a non-admin session may see the widget.
type ProfileChecker interface {
	HasCompletedProfile(ctx context.Context, sess domain.Session) bool
}

// Controller owns the widget state and routes user actions to the Exchange.
// It is safe for concurrent use.
type Controller struct {
	sessions ports.SessionStore
	gate     ProfileChecker
	exchange *service.Exchange
	nav      ports.Navigator
	narrow   int
	fullPage bool
	greeting string
	log      zerolog.Logger

	mu         sync.Mutex
	state      State
	evaluated  bool
	done       bool
	transcript *service.Transcript

	inflight sync.WaitGroup
}

// New builds the overlay widget. A non-positive narrowWidth selects
// DefaultNarrowWidth.
func New(sessions ports.SessionStore, gate ProfileChecker, exchange *service.Exchange, nav ports.Navigator, narrowWidth int, log zerolog.Logger) *Controller {
	if narrowWidth <= 0 {
		narrowWidth = DefaultNarrowWidth
	}
	return &Controller{
		sessions:   sessions,
		gate:       gate,
		exchange:   exchange,
		nav:        nav,
		narrow:     narrowWidth,
		log:        log,
		transcript: exchange.Transcript(),
	}
}

// FullPage builds the full-page assistant. It has no overlay: once mounted
// it stays Open. It is gated exactly like the overlay.
func FullPage(sessions ports.SessionStore, gate ProfileChecker, exchange *service.Exchange, log zerolog.Logger) *Controller {
	return &Controller{
		sessions:   sessions,
		gate:       gate,
		exchange:   exchange,
		fullPage:   true,
		log:        log,
		transcript: exchange.Transcript(),
	}
}

// WithGreeting seeds text as the first assistant message when Mount makes
// the widget visible. It must be called before Mount.
func (c *Controller) WithGreeting(text string) *Controller {
	c.greeting = text
	return c
}

// Mount decides visibility once per controller. Later calls return the
// current state without consulting the store or the gate again.
func (c *Controller) Mount(ctx context.Context) State {
	c.mu.Lock()
	if c.evaluated {
		s := c.state
		c.mu.Unlock()
		return s
	}
	c.evaluated = true
	c.mu.Unlock()

	next := c.decide(ctx)

	c.mu.Lock()
	if c.done {
		s := c.state
		c.mu.Unlock()
		return s
	}
	c.state = next
	c.mu.Unlock()

	metrics.WidgetMountsTotal.WithLabelValues(next.String()).Inc()
	c.log.Debug().Str("state", next.String()).Bool("full_page", c.fullPage).Msg("widget mounted")
	if next != Hidden && c.greeting != "" {
		c.exchange.Greet(c.greeting)
	}
	return next
}

// decide fails closed: without a session, or for a non-admin whose profile
// is not confirmed complete, the widget stays Hidden.
func (c *Controller) decide(ctx context.Context) State {
	sess, ok := c.sessions.Load(ctx)
	if !ok {
		return Hidden
	}
	if !sess.IsAdmin() && (c.gate == nil || !c.gate.HasCompletedProfile(ctx, sess)) {
		return Hidden
	}
	if c.fullPage {
		return Open
	}
	return Collapsed
}

// Activate handles the launcher control. Narrow viewports navigate to the
// full-page assistant and leave the state untouched.
func (c *Controller) Activate(viewportWidth int) State {
	c.mu.Lock()
	if c.fullPage || (c.state != Collapsed && c.state != Open) {
		s := c.state
		c.mu.Unlock()
		return s
	}
	if viewportWidth <= c.narrow {
		s := c.state
		c.mu.Unlock()
		if c.nav != nil {
			c.nav.Navigate(domain.LandingAssistant)
		}
		return s
	}
	if c.state == Open {
		c.state = Collapsed
	} else {
		c.state = Open
	}
	s := c.state
	c.mu.Unlock()
	return s
}

// Close collapses an open overlay.
func (c *Controller) Close() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fullPage && c.state == Open {
		c.state = Collapsed
	}
	return c.state
}

// Submit sends text when the conversation is visible. The user message is
// in the transcript when Submit returns; the reply is appended by a
// background goroutine.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	c.mu.Lock()
	if c.state != Open {
		c.mu.Unlock()
		return false
	}
	p, ok := c.exchange.Begin(text)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.inflight.Done()
		p.Complete(ctx)
	}()
	return true
}

// ActivateSuggestion composes and sends a suggestion in one step.
func (c *Controller) ActivateSuggestion(ctx context.Context, suggestion string) bool {
	return c.Submit(ctx, suggestion)
}

// Unmount ends the page life. Requests already in flight still finish but
// their replies are no longer visible through this controller.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Unmounted
	c.evaluated = true
	c.done = true
	c.transcript = nil
}

// Wait blocks until every submitted message has its reply appended.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transcript returns the visible entries, or nil after Unmount.
func (c *Controller) Transcript() []service.Entry {
	c.mu.Lock()
	t := c.transcript
	c.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.Snapshot()
}

func (c *Controller) IsFullPage() bool { return c.fullPage }
