package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/metrics"
)

// AuthClient signs the user in or up, persists the session and decides
// where the host goes next.
type AuthClient struct {
	backend  ports.AuthBackend
	sessions ports.SessionStore
	nav      ports.Navigator
	alert    ports.Alerter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthClient(backend ports.AuthBackend, sessions ports.SessionStore, nav ports.Navigator, alert ports.Alerter, log zerolog.Logger) *AuthClient {
	return &AuthClient{
		backend:  backend,
		sessions: sessions,
		nav:      nav,
		alert:    alert,
		validate: validator.New(),
		log:      log,
	}
}

type loginForm struct {
	Email    string      `validate:"required"`
	Password string      `validate:"required"`
	Role     domain.Role `validate:"required,oneof=USER ADMIN"`
}

type registerForm struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"required"`
	Password string      `validate:"required"`
	Role     domain.Role `validate:"required,oneof=USER ADMIN"`
}

// LandingAfterLogin decides the destination of a successful login.
func LandingAfterLogin(res ports.AuthResult) domain.Landing {
	switch {
	case res.Role == domain.RoleAdmin:
		return domain.LandingAdmin
	case res.ProfileCompleted:
		return domain.LandingMain
	default:
		return domain.LandingOnboarding
	}
}

// LandingAfterRegister always starts onboarding.
func LandingAfterRegister() domain.Landing {
	return domain.LandingOnboarding
}

// Login validates, authenticates, stores the session and navigates.
// Failures are written to slot (or alerted) and also returned.
func (a *AuthClient) Login(ctx context.Context, email, password string, role domain.Role, slot ports.ErrorSlot) (domain.Landing, error) {
	clearSlot(slot)

	form := loginForm{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
		Role:     defaultRole(role),
	}
	if err := a.check(form); err != nil {
		return a.fail("login", slot, err)
	}

	res, err := a.backend.Login(ctx, ports.Credentials{Email: form.Email, Password: form.Password, Role: form.Role})
	if err != nil {
		return a.fail("login", slot, err)
	}
	return a.establish(ctx, "login", slot, *res, LandingAfterLogin(*res))
}

// Register validates, creates the account, stores the session and sends the
// user to onboarding regardless of server flags.
func (a *AuthClient) Register(ctx context.Context, name, email, password string, role domain.Role, slot ports.ErrorSlot) (domain.Landing, error) {
	clearSlot(slot)

	form := registerForm{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
		Role:     defaultRole(role),
	}
	if err := a.check(form); err != nil {
		return a.fail("register", slot, err)
	}

	res, err := a.backend.Register(ctx, ports.Registration{Name: form.Name, Email: form.Email, Password: form.Password, Role: form.Role})
	if err != nil {
		return a.fail("register", slot, err)
	}
	return a.establish(ctx, "register", slot, *res, LandingAfterRegister())
}

// Logout clears the session and returns to the entry page.
func (a *AuthClient) Logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Warn().Err(err).Msg("session clear failed")
	}
	a.nav.Navigate(domain.LandingEntry)
}

func (a *AuthClient) establish(ctx context.Context, op string, slot ports.ErrorSlot, res ports.AuthResult, to domain.Landing) (domain.Landing, error) {
	if err := a.sessions.Save(ctx, res.Session()); err != nil {
		return a.fail(op, slot, domain.NewAuthError(failedMessage(op), fmt.Errorf("save session: %w", err)))
	}
	metrics.AuthAttemptsTotal.WithLabelValues(op, "ok").Inc()
	a.log.Info().Str("op", op).Str("email", res.Email).Str("role", string(res.Role)).Str("landing", string(to)).Msg("authenticated")
	a.nav.Navigate(to)
	return to, nil
}

func (a *AuthClient) fail(op string, slot ports.ErrorSlot, err error) (domain.Landing, error) {
	var ue *domain.UserError
	if !errors.As(err, &ue) {
		ue = domain.NewAuthError(failedMessage(op), err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues(op, ue.Kind.String()).Inc()
	a.log.Debug().Err(ue.Unwrap()).Str("op", op).Str("kind", ue.Kind.String()).Msg(ue.Message)

	if slot != nil {
		slot.Show(ue.Message)
	} else if a.alert != nil {
		a.alert.Alert(ue.Message)
	}
	return "", ue
}

// check runs struct validation and converts the first failure to a
// ValidationError.
func (a *AuthClient) check(form any) error {
	err := a.validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return domain.NewValidationError(domain.MsgFillAllFields)
	}
	return domain.NewValidationError(fieldMessage(ve))
}

// fieldMessage reports missing fields with the form-level message and
// anything else per field.
func fieldMessage(ve validator.ValidationErrors) string {
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return domain.MsgFillAllFields
		}
	}
	fe := ve[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func defaultRole(r domain.Role) domain.Role {
	if r == "" {
		return domain.RoleUser
	}
	if parsed, ok := domain.ParseRole(string(r)); ok {
		return parsed
	}
	return r
}

func failedMessage(op string) string {
	if op == "register" {
		return domain.MsgRegistrationFailed
	}
	return domain.MsgLoginFailed
}

func clearSlot(slot ports.ErrorSlot) {
	if slot != nil {
		slot.Clear()
	}
}
