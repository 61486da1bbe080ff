package domain

import "errors"

// ErrorKind groups the errors a user may see.
type ErrorKind int

const (
	// KindValidation is a local form error; no request was sent.
	KindValidation ErrorKind = iota + 1
	// KindAuth is a rejected or unreadable login/register response.
	KindAuth
	// KindTransport is a request that never reached the server.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

const (
	MsgFillAllFields      = "Please fill in all fields."
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgCannotConnect      = "Cannot connect to the backend server. Please ensure the backend is running."
)

// UserError carries text that is safe to show in the UI.
type UserError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func NewValidationError(msg string) *UserError {
	return &UserError{Kind: KindValidation, Message: msg}
}

func NewAuthError(msg string, err error) *UserError {
	return &UserError{Kind: KindAuth, Message: msg, Err: err}
}

func NewTransportError(err error) *UserError {
	return &UserError{Kind: KindTransport, Message: MsgCannotConnect, Err: err}
}

// IsKind reports whether err is a UserError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Kind == kind
}
