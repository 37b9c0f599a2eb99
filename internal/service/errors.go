package service

import (
	"errors"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")

	ErrToolNotFound    = fmt.Errorf("tool %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

// duplicateMessages maps unique constraints to the message shown to the caller.
var duplicateMessages = map[string]*domain.ValidationError{
	"users_username_key": {Field: "username", Message: "username already taken"},
	"users_email_key":    {Field: "email", Message: "email already registered"},
}

// translate turns repository errors that the caller caused into validation
// errors; everything else passes through unchanged.
func translate(err error) error {
	var cerr *repository.ConstraintError
	if !errors.As(err, &cerr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrDuplicate):
		if verr, ok := duplicateMessages[cerr.Constraint]; ok {
			return &domain.ValidationError{Field: verr.Field, Message: verr.Message}
		}
		return &domain.ValidationError{Message: "duplicate value violates " + cerr.Constraint}
	case errors.Is(err, repository.ErrForeignKey):
		return &domain.ValidationError{Message: "referenced record does not exist"}
	case errors.Is(err, repository.ErrCheckViolation):
		return &domain.ValidationError{Message: "value violates " + cerr.Constraint}
	}
	return err
}

// notFoundAs replaces repository.ErrNotFound with the given service error.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
