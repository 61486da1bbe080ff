package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/api/middleware"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

type stubAccounts struct {
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	users      map[string]*domain.User
	completed  []string
}

func (s *stubAccounts) Register(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAccounts) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password, role)
}

func (s *stubAccounts) Profile(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubAccounts) CompleteProfile(_ context.Context, id string) error {
	s.completed = append(s.completed, id)
	return nil
}

type stubEngine struct {
	gotUser    *domain.User
	gotMessage string
}

func (e *stubEngine) Reply(_ context.Context, u *domain.User, msg string) ports.ReplyDocument {
	e.gotUser, e.gotMessage = u, msg
	return ports.ReplyDocument{Text: "echo: " + msg, Chips: []string{"Suggest Lunch"}}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{
		loginFn: func(_ context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
			if email != "asha@example.com" || password != "Secret1!" || role != domain.RoleUser {
				t.Fatalf("unexpected args: %s %s %s", email, password, role)
			}
			return "tok", &domain.User{Email: email, Name: "Asha", Role: role, ProfileCompleted: true}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"asha@example.com","password":"Secret1!","role":"USER"}`), rec)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" || resp["name"] != "Asha" || resp["role"] != "USER" || resp["profile_completed"] != true {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{loginFn: func(context.Context, string, string, domain.Role) (string, *domain.User, error) {
		t.Fatalf("service must not be called")
		return "", nil, nil
	}}
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"x","role":"CHEF"}`), httptest.NewRecorder())

	err := NewAuthHandler(stub).Login(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Issues) != 2 || ve.Issues[0].Loc[1] != "email" || ve.Issues[1].Msg != "role must be one of: USER ADMIN" {
		t.Fatalf("unexpected issues: %+v", ve.Issues)
	}
}

func TestAuthHandler_Register_PassesServiceError(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{registerFn: func(context.Context, string, string, string, domain.Role) (string, *domain.User, error) {
		return "", nil, domain.ErrUserExists
	}}
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"A","email":"a@example.com","password":"Secret1!","role":"USER"}`), httptest.NewRecorder())

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestProfileHandler_Check(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{users: map[string]*domain.User{
		"7": {ID: "7", Name: "Asha", ProfileCompleted: true, OnboardingStep: domain.OnboardingDone},
	}}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health/check", nil), rec)
	c.Set(middleware.CtxUserID, "7")
	c.Set(middleware.CtxRole, "USER")

	if err := NewProfileHandler(stub).Check(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp profileCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.HasProfile || resp.UserID != "7" || resp.OnboardingStep != domain.OnboardingDone {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestProfileHandler_MissingClaims(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health/check", nil), httptest.NewRecorder())

	err := NewProfileHandler(&stubAccounts{}).Check(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProfileHandler_Complete(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/health/profile", nil), rec)
	c.Set(middleware.CtxUserID, "7")
	c.Set(middleware.CtxRole, "USER")

	if err := NewProfileHandler(stub).Complete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(stub.completed) != 1 || stub.completed[0] != "7" {
		t.Fatalf("CompleteProfile not called: %v", stub.completed)
	}
}

func TestChatbotHandler_Query(t *testing.T) {
	e := newEcho()
	user := &domain.User{ID: "7", Name: "Asha"}
	engine := &stubEngine{}
	h := NewChatbotHandler(&stubAccounts{users: map[string]*domain.User{"7": user}}, engine)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/chatbot/query", `{"message":"hi","context":{"page":"user"}}`), rec)
	c.Set(middleware.CtxUserID, "7")
	c.Set(middleware.CtxRole, "USER")

	if err := h.Query(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if engine.gotUser != user || engine.gotMessage != "hi" {
		t.Fatalf("engine called with %+v %q", engine.gotUser, engine.gotMessage)
	}
	var doc ports.ReplyDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Text != "echo: hi" || len(doc.Chips) != 1 {
		t.Fatalf("unexpected reply %+v", doc)
	}
}

func TestChatbotHandler_EmptyMessage(t *testing.T) {
	e := newEcho()
	h := NewChatbotHandler(&stubAccounts{}, &stubEngine{})
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/chatbot/query", `{"message":""}`), httptest.NewRecorder())
	c.Set(middleware.CtxUserID, "7")
	c.Set(middleware.CtxRole, "USER")

	var ve *ValidationError
	if err := h.Query(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	e := newEcho()
	h := NewHealthHandler(map[string]PingFunc{
		"mongodb": func(context.Context) error { return errors.New("no reachable servers") },
		"memory":  func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "degraded" || resp.Dependencies["memory"].Status != "ok" || resp.Dependencies["mongodb"].Error == "" {
		t.Fatalf("unexpected readiness %+v", resp)
	}

	rec = httptest.NewRecorder()
	_ = NewHealthHandler(nil).Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("no dependencies should be ready, got %d", rec.Code)
	}
}
