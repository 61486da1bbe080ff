package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/service"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/memstore"
)

type stubGate struct {
	mu    sync.Mutex
	open  bool
	calls int
}

func (g *stubGate) HasCompletedProfile(context.Context, domain.Session) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.open
}

type recordingNav struct {
	mu      sync.Mutex
	visited []domain.Landing
}

func (n *recordingNav) Navigate(to domain.Landing) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visited = append(n.visited, to)
}

// stubChat replies "re: <message>", optionally waiting on a per-message gate.
type stubChat struct {
	mu      sync.Mutex
	release map[string]chan struct{}
	fail    bool
}

func (c *stubChat) Query(_ context.Context, _ string, message string) (*domain.ReplyPayload, error) {
	c.mu.Lock()
	ch := c.release[message]
	fail := c.fail
	c.mu.Unlock()
	if ch != nil {
		<-ch
	}
	if fail {
		return nil, errors.New("status 500")
	}
	return &domain.ReplyPayload{Text: "re: " + message, Suggestions: []string{"Order Now"}}, nil
}

type fixture struct {
	store *memstore.SessionStore
	gate  *stubGate
	nav   *recordingNav
	chat  *stubChat
	ctrl  *Controller
	tr    *service.Transcript
}

func newFixture(t *testing.T, sess *domain.Session, gateOpen bool) *fixture {
	t.Helper()
	f := &fixture{
		store: memstore.NewSessionStore(),
		gate:  &stubGate{open: gateOpen},
		nav:   &recordingNav{},
		chat:  &stubChat{release: map[string]chan struct{}{}},
		tr:    service.NewTranscript(),
	}
	if sess != nil {
		if err := f.store.Save(context.Background(), *sess); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	ex := service.NewExchange(f.chat, f.store, f.tr, zerolog.Nop())
	f.ctrl = New(f.store, f.gate, ex, f.nav, 0, zerolog.Nop())
	return f
}

var (
	userSession  = &domain.Session{Token: "t", Email: "u@x.io", Name: "U", Role: domain.RoleUser}
	adminSession = &domain.Session{Token: "t", Email: "a@x.io", Name: "A", Role: domain.RoleAdmin}
)

func TestController_MountMatrix(t *testing.T) {
	cases := []struct {
		name      string
		sess      *domain.Session
		gateOpen  bool
		want      State
		gateCalls int
	}{
		{"no session", nil, true, Hidden, 0},
		{"admin skips gate", adminSession, false, Collapsed, 0},
		{"user with profile", userSession, true, Collapsed, 1},
		{"user without profile", userSession, false, Hidden, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.sess, tc.gateOpen)
			if got := f.ctrl.Mount(context.Background()); got != tc.want {
				t.Fatalf("Mount = %s, want %s", got, tc.want)
			}
			if f.gate.calls != tc.gateCalls {
				t.Fatalf("gate calls = %d, want %d", f.gate.calls, tc.gateCalls)
			}
		})
	}
}

func TestController_MountEvaluatedOnce(t *testing.T) {
	f := newFixture(t, userSession, false)
	if got := f.ctrl.Mount(context.Background()); got != Hidden {
		t.Fatalf("first Mount = %s", got)
	}
	f.gate.open = true
	if got := f.ctrl.Mount(context.Background()); got != Hidden {
		t.Fatalf("second Mount must not re-evaluate, got %s", got)
	}
	if f.gate.calls != 1 {
		t.Fatalf("gate consulted %d times", f.gate.calls)
	}
}

func TestController_HiddenIgnoresActions(t *testing.T) {
	f := newFixture(t, nil, false)
	f.ctrl.Mount(context.Background())

	if got := f.ctrl.Activate(1280); got != Hidden {
		t.Fatalf("Activate on hidden widget = %s", got)
	}
	if f.ctrl.Submit(context.Background(), "hello") {
		t.Fatalf("hidden widget must not send")
	}
	if len(f.nav.visited) != 0 {
		t.Fatalf("hidden widget must not navigate")
	}
}

func TestController_ToggleAndClose(t *testing.T) {
	f := newFixture(t, adminSession, false)
	f.ctrl.Mount(context.Background())

	if got := f.ctrl.Activate(1280); got != Open {
		t.Fatalf("Activate = %s, want open", got)
	}
	if got := f.ctrl.Activate(1280); got != Collapsed {
		t.Fatalf("second Activate = %s, want collapsed", got)
	}
	f.ctrl.Activate(1280)
	if got := f.ctrl.Close(); got != Collapsed {
		t.Fatalf("Close = %s, want collapsed", got)
	}
	if got := f.ctrl.Close(); got != Collapsed {
		t.Fatalf("Close on collapsed = %s", got)
	}
}

func TestController_NarrowViewportNavigates(t *testing.T) {
	for _, width := range []int{320, 768} {
		f := newFixture(t, userSession, true)
		f.ctrl.Mount(context.Background())

		if got := f.ctrl.Activate(width); got != Collapsed {
			t.Fatalf("width %d: state changed to %s", width, got)
		}
		if len(f.nav.visited) != 1 || f.nav.visited[0] != domain.LandingAssistant {
			t.Fatalf("width %d: expected navigation to assistant page, got %v", width, f.nav.visited)
		}
	}

	f := newFixture(t, userSession, true)
	f.ctrl.Mount(context.Background())
	if got := f.ctrl.Activate(769); got != Open {
		t.Fatalf("769px should toggle, got %s", got)
	}
}

func TestController_SubmitRequiresOpen(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.ctrl.Mount(context.Background())

	if f.ctrl.Submit(context.Background(), "hello") {
		t.Fatalf("collapsed widget must not send")
	}
	f.ctrl.Activate(1024)
	if f.ctrl.Submit(context.Background(), "   ") {
		t.Fatalf("blank text must not send")
	}
	if !f.ctrl.Submit(context.Background(), "hello") {
		t.Fatalf("open widget should send")
	}
	f.ctrl.Wait()

	entries := f.ctrl.Transcript()
	if len(entries) != 2 || entries[1].Message.Body != "re: hello" {
		t.Fatalf("unexpected transcript %+v", entries)
	}
}

func TestController_UserMessageAppendedBeforeReply(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.chat.release["slow"] = make(chan struct{})
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)

	f.ctrl.Submit(context.Background(), "slow")
	entries := f.ctrl.Transcript()
	if len(entries) != 1 || entries[0].Message.Author != domain.AuthorUser {
		t.Fatalf("user message should be visible while the request is pending: %+v", entries)
	}
	close(f.chat.release["slow"])
	f.ctrl.Wait()
	if len(f.ctrl.Transcript()) != 2 {
		t.Fatalf("reply not appended")
	}
}

func TestController_OutOfOrderReplies(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.chat.release["one"] = make(chan struct{})
	f.chat.release["two"] = make(chan struct{})
	appended := make(chan service.Entry, 4)
	f.tr.OnAppend(func(e service.Entry) {
		if e.Message.Author == domain.AuthorAssistant {
			appended <- e
		}
	})
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)

	f.ctrl.Submit(context.Background(), "one")
	f.ctrl.Submit(context.Background(), "two")

	close(f.chat.release["two"])
	waitFor(t, appended)
	close(f.chat.release["one"])
	waitFor(t, appended)
	f.ctrl.Wait()

	var got []string
	for _, e := range f.ctrl.Transcript() {
		got = append(got, e.Message.Body)
	}
	want := []string{"one", "two", "re: two", "re: one"}
	if len(got) != len(want) {
		t.Fatalf("transcript %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transcript %v, want %v", got, want)
		}
	}
}

func TestController_ReplyAfterCloseStillAppends(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.chat.release["late"] = make(chan struct{})
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)

	f.ctrl.Submit(context.Background(), "late")
	f.ctrl.Close()
	close(f.chat.release["late"])
	f.ctrl.Wait()

	if got := f.ctrl.Activate(1024); got != Open {
		t.Fatalf("reopen = %s", got)
	}
	entries := f.ctrl.Transcript()
	if len(entries) != 2 || entries[1].Message.Body != "re: late" {
		t.Fatalf("late reply missing after reopen: %+v", entries)
	}
}

func TestController_FailedReplyShowsBusy(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.chat.fail = true
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)

	f.ctrl.Submit(context.Background(), "hello")
	f.ctrl.Wait()
	entries := f.ctrl.Transcript()
	if entries[len(entries)-1].Message.Body != service.BusyReply {
		t.Fatalf("expected busy reply, got %+v", entries)
	}
}

func TestController_ActivateSuggestion(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)

	if !f.ctrl.ActivateSuggestion(context.Background(), "Order Now") {
		t.Fatalf("suggestion should send")
	}
	f.ctrl.Wait()
	entries := f.ctrl.Transcript()
	if entries[0].Message.Body != "Order Now" || entries[1].Message.Body != "re: Order Now" {
		t.Fatalf("unexpected transcript %+v", entries)
	}
}

func TestController_Unmount(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.chat.release["bye"] = make(chan struct{})
	f.ctrl.Mount(context.Background())
	f.ctrl.Activate(1024)
	f.ctrl.Submit(context.Background(), "bye")

	f.ctrl.Unmount()
	close(f.chat.release["bye"])
	f.ctrl.Wait()

	if f.ctrl.State() != Unmounted || f.ctrl.Transcript() != nil {
		t.Fatalf("unmounted widget should drop its transcript")
	}
	if got := f.ctrl.Mount(context.Background()); got != Unmounted {
		t.Fatalf("Mount after Unmount = %s", got)
	}
	if f.ctrl.Activate(1024) != Unmounted || f.ctrl.Submit(context.Background(), "again") {
		t.Fatalf("unmounted widget must ignore actions")
	}
	if f.tr.Len() != 2 {
		t.Fatalf("in-flight request should still complete, transcript has %d entries", f.tr.Len())
	}
}

func TestFullPage_MountMatrix(t *testing.T) {
	cases := []struct {
		name string
		sess *domain.Session
		gate ProfileChecker
		want State
	}{
		{"no session", nil, &stubGate{open: true}, Hidden},
		{"user without profile", userSession, &stubGate{open: false}, Hidden},
		{"user without gate", userSession, nil, Hidden},
		{"user with profile", userSession, &stubGate{open: true}, Open},
		{"admin skips gate", adminSession, &stubGate{open: false}, Open},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.NewSessionStore()
			if tc.sess != nil {
				_ = store.Save(context.Background(), *tc.sess)
			}
			ex := service.NewExchange(&stubChat{}, store, service.NewTranscript(), zerolog.Nop())
			if got := FullPage(store, tc.gate, ex, zerolog.Nop()).Mount(context.Background()); got != tc.want {
				t.Fatalf("Mount = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFullPage(t *testing.T) {
	store := memstore.NewSessionStore()
	_ = store.Save(context.Background(), *userSession)
	ex := service.NewExchange(&stubChat{}, store, service.NewTranscript(), zerolog.Nop())

	page := FullPage(store, &stubGate{open: true}, ex, zerolog.Nop())
	if got := page.Mount(context.Background()); got != Open {
		t.Fatalf("full page with session = %s", got)
	}
	if page.Activate(320) != Open || page.Close() != Open {
		t.Fatalf("full page has no overlay state")
	}
	if !page.IsFullPage() || !page.Submit(context.Background(), "hi") {
		t.Fatalf("full page should send")
	}
	page.Wait()
	if len(page.Transcript()) != 2 {
		t.Fatalf("expected exchange on the full page")
	}
}

func TestController_GreetingSeededWhenVisible(t *testing.T) {
	f := newFixture(t, userSession, true)
	f.ctrl.WithGreeting(Greeting)

	f.ctrl.Mount(context.Background())
	f.ctrl.Mount(context.Background())

	entries := f.ctrl.Transcript()
	if len(entries) != 1 {
		t.Fatalf("expected one greeting, got %d entries", len(entries))
	}
	g := entries[0]
	if g.Message.Author != domain.AuthorAssistant || g.Message.Body != Greeting || g.Message.Structured != nil {
		t.Fatalf("unexpected greeting %+v", g.Message)
	}
	if len(g.Fragments) != 1 || g.Fragments[0].Text != Greeting {
		t.Fatalf("unexpected greeting fragments %+v", g.Fragments)
	}
}

func TestController_NoGreetingWhenHidden(t *testing.T) {
	f := newFixture(t, userSession, false)
	f.ctrl.WithGreeting(Greeting)

	if got := f.ctrl.Mount(context.Background()); got != Hidden {
		t.Fatalf("Mount = %s", got)
	}
	if f.tr.Len() != 0 {
		t.Fatalf("hidden widget must not greet, transcript has %d entries", f.tr.Len())
	}
}

func waitFor(t *testing.T, ch <-chan service.Entry) service.Entry {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reply")
		return service.Entry{}
	}
}
