// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate snapshot id")
	ErrStoreClosed = errors.New("store is closed")

	// Import errors.
	ErrEmptyImport = errors.New("no importable rows")

	// Configuration errors.
	ErrInvalidCategory  = errors.New("invalid account category")
	ErrInvalidFrequency = errors.New("invalid reminder frequency")
	ErrInvalidCurrency  = errors.New("invalid currency symbol")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
