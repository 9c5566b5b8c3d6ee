package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("account or password is incorrect")
	ErrDuplicateAccount   = errors.New("account is already registered")
	ErrValidation         = errors.New("missing required fields")
	ErrInvalidTransition  = errors.New("illegal order status transition")
)

// NotFoundError reports a missing entity, parameterized by kind and id so the
// HTTP layer can render a useful message.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is any entity-not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
