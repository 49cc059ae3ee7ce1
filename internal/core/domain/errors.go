package domain

import "errors"

// Authorization chain failures.
var (
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenUserNotFound  = errors.New("token subject not found")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrConsentRequired    = errors.New("gdpr consent required")
	ErrForbidden          = errors.New("access forbidden")
)

// Account management failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// InternalError marks a fault that must surface as a server error no matter
// which error caused it, e.g. a user lookup failing inside the consent gate.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Internal wraps err as an InternalError for operation op.
func Internal(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}
