package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/console"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/service"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/render"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/widget"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/pkg/logger"
)

const chatHelp = "commands: /open  /close  /s N (use suggestion N)  /width N  /quit"

func newChatCmd(a *app) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the health assistant",
		Long: `chat mounts the assistant widget and reads messages from stdin.

The overlay starts collapsed; type /open to show it. When --width is at or
below the narrow threshold the full-page assistant is used instead.

` + chatHelp,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), a, width, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&width, "width", 1280, "viewport width in pixels")
	return cmd
}

// page is one mounted widget with its own transcript printer.
type page struct {
	ctrl *widget.Controller

	mu          sync.Mutex
	suggestions []string
}

// chatHost owns the page lifecycle: a narrow launcher navigates to the
// full-page assistant, which replaces the overlay page.
type chatHost struct {
	a     *app
	out   *syncWriter
	nav   *console.Navigator
	width int
}

func runChat(ctx context.Context, a *app, width int, in io.Reader, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	h := &chatHost{a: a, out: &syncWriter{w: w}, width: width}
	h.nav = console.NewNavigator(h.out, a.term)

	var p *page
	if width <= a.cfg.Widget.NarrowWidth {
		p = h.fullPage(ctx)
	} else {
		p = h.overlay(ctx)
	}

	state := p.ctrl.State()
	h.notice("assistant %s", strings.ToLower(state.String()))
	if state == widget.Hidden {
		p.ctrl.Unmount()
		h.notice("sign in and complete your health profile to use the assistant")
		return nil
	}
	h.notice(chatHelp)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "/quit":
			h.leave(p)
			return nil
		case line == "/open":
			before := h.nav.Last()
			s := p.ctrl.Activate(h.width)
			if h.nav.Last() == domain.LandingAssistant && before != domain.LandingAssistant {
				h.leave(p)
				p = h.fullPage(ctx)
				s = p.ctrl.State()
			}
			h.notice("assistant %s", strings.ToLower(s.String()))
		case strings.HasPrefix(line, "/width "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/width ")))
			if err != nil || n <= 0 {
				h.notice("width must be a positive number")
				continue
			}
			h.width = n
		case line == "/close":
			h.notice("assistant %s", strings.ToLower(p.ctrl.Close().String()))
		case strings.HasPrefix(line, "/s "):
			text, ok := p.suggestion(strings.TrimSpace(strings.TrimPrefix(line, "/s ")))
			if !ok {
				h.notice("no such suggestion")
				continue
			}
			if !p.ctrl.ActivateSuggestion(ctx, text) {
				h.notice("type /open first")
			}
		case strings.HasPrefix(line, "/"):
			h.notice(chatHelp)
		default:
			if !p.ctrl.Submit(ctx, line) {
				h.notice("type /open first")
			}
		}
	}
	h.leave(p)
	return sc.Err()
}

func (h *chatHost) overlay(ctx context.Context) *page {
	ex, p := h.newPage()
	gate := service.NewProfileGate(h.a.client, logger.For("gate"))
	p.ctrl = widget.New(h.a.store, gate, ex, h.nav, h.a.cfg.Widget.NarrowWidth, logger.For("widget")).
		WithGreeting(widget.Greeting)
	p.ctrl.Mount(ctx)
	return p
}

func (h *chatHost) fullPage(ctx context.Context) *page {
	ex, p := h.newPage()
	gate := service.NewProfileGate(h.a.client, logger.For("gate"))
	p.ctrl = widget.FullPage(h.a.store, gate, ex, logger.For("widget")).WithGreeting(widget.Greeting)
	p.ctrl.Mount(ctx)
	return p
}

func (h *chatHost) newPage() (*service.Exchange, *page) {
	tr := service.NewTranscript()
	p := &page{}
	tr.OnAppend(func(e service.Entry) {
		if e.Message.Author == domain.AuthorAssistant {
			p.remember(e.Fragments)
		}
		fmt.Fprintln(h.out, h.a.term.Message(e.Message, e.Fragments))
	})
	return service.NewExchange(h.a.client, h.a.store, tr, logger.For("exchange")), p
}

// leave waits for replies in flight so they are printed, then unmounts.
func (h *chatHost) leave(p *page) {
	p.ctrl.Wait()
	p.ctrl.Unmount()
}

func (h *chatHost) notice(format string, args ...any) {
	fmt.Fprintln(h.out, h.a.term.Notice(fmt.Sprintf(format, args...)))
}

func (p *page) remember(frags []render.Fragment) {
	var s []string
	for _, f := range frags {
		if f.Activatable() {
			s = append(s, f.Text)
		}
	}
	p.mu.Lock()
	p.suggestions = s
	p.mu.Unlock()
}

// suggestion resolves a 1-based index into the latest reply's suggestions.
func (p *page) suggestion(arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > len(p.suggestions) {
		return "", false
	}
	return p.suggestions[n-1], true
}

// syncWriter serialises writes from reply goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}
