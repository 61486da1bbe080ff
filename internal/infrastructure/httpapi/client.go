// Package httpapi is the HTTP transport for the HealthBite API. It
// implements the AuthBackend, ProfileBackend and ChatBackend ports.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
	pathCheck    = "/api/health/check"
	pathQuery    = "/api/chatbot/query"

	maxBodyBytes   = 1 << 20
	defaultTimeout = 15 * time.Second
)

var (
	ErrStatus      = errors.New("unexpected status")
	ErrMalformed   = errors.New("malformed response body")
	ErrMissingFlag = errors.New("has_profile missing from response")
)

// Client calls the HealthBite API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ ports.AuthBackend    = (*Client)(nil)
	_ ports.ProfileBackend = (*Client)(nil)
	_ ports.ChatBackend    = (*Client)(nil)
)

// New returns a Client for baseURL. A zero timeout uses the default.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// WithHTTPClient swaps the underlying client (tests, custom transports).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// BaseURL is the origin the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type authResponse struct {
	Token            string `json:"token"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	ProfileCompleted bool   `json:"profile_completed"`
}

type queryRequest struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, cr ports.Credentials) (*ports.AuthResult, error) {
	body := loginRequest{Email: cr.Email, Password: cr.Password, Role: cr.Role}
	return c.authenticate(ctx, pathLogin, body, domain.MsgLoginFailed)
}

func (c *Client) Register(ctx context.Context, r ports.Registration) (*ports.AuthResult, error) {
	body := registerRequest{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
	return c.authenticate(ctx, pathRegister, body, domain.MsgRegistrationFailed)
}

// authenticate posts credentials and classifies every failure as a
// *domain.UserError. Errors from http.Client.Do never carry a response,
// so they are all transport failures.
func (c *Client) authenticate(ctx context.Context, path string, body any, generic string) (*ports.AuthResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, domain.NewAuthError(generic, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("auth request did not reach server")
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewAuthError(generic, fmt.Errorf("read body: %w", err))
	}

	if !isSuccess(resp.StatusCode) {
		return nil, domain.NewAuthError(serverMessage(raw, generic),
			fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode))
	}

	var out authResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, domain.NewAuthError(generic, fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	role, ok := domain.ParseRole(out.Role)
	if !ok || out.Token == "" || out.Email == "" {
		return nil, domain.NewAuthError(generic, ErrMalformed)
	}

	return &ports.AuthResult{
		Token:            out.Token,
		Email:            out.Email,
		Name:             out.Name,
		Role:             role,
		ProfileCompleted: out.ProfileCompleted,
	}, nil
}

// CheckProfile asks whether the bearer has finished onboarding.
func (c *Client) CheckProfile(ctx context.Context, token string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathCheck, token, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("profile check: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return false, fmt.Errorf("profile check: %w: %d", ErrStatus, resp.StatusCode)
	}

	var out struct {
		HasProfile *bool `json:"has_profile"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return false, fmt.Errorf("profile check: %w: %v", ErrMalformed, err)
	}
	if out.HasProfile == nil {
		return false, fmt.Errorf("profile check: %w", ErrMissingFlag)
	}
	return *out.HasProfile, nil
}

// Query sends one chat message and decodes the structured reply.
func (c *Client) Query(ctx context.Context, token, message string) (*domain.ReplyPayload, error) {
	req, err := c.newRequest(ctx, http.MethodPost, pathQuery, token, queryRequest{Message: message})
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat query: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("chat query: %w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("chat query: read body: %w", err)
	}
	payload, err := decodeReply(raw)
	if err != nil {
		return nil, fmt.Errorf("chat query: %w", err)
	}
	return payload, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
