package service

import "errors"

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrInsufficientStock = errors.New("Insufficient stock")
)

// Error carries a client-facing message and unwraps to its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}
