// Package common defines shared constants and sentinel errors used across
// client and server layers of docflow. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")

	// Domain errors, surfaced to clients 1:1.
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrIntegrity     = errors.New("integrity violation")
	ErrNoSignatures  = errors.New("document has no signatures")

	// Infrastructure errors.
	ErrStorageIO = errors.New("storage i/o failure")
	ErrInternal  = errors.New("internal error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrInactiveUser = errors.New("user is not active")

	// User lifecycle.
	ErrUserHasDocuments  = errors.New("user still owns documents")
	ErrUserHasSignatures = errors.New("user has signed documents")
)

// DocumentStateError reports a refused status transition. It matches
// ErrForbidden under errors.Is.
type DocumentStateError struct {
	Role string
	From string
	To   string
}

func (e *DocumentStateError) Error() string {
	return fmt.Sprintf("user with role %s cannot change document from %s to %s", e.Role, e.From, e.To)
}

func (e *DocumentStateError) Unwrap() error { return ErrForbidden }

// ValidationError describes why an uploaded document was refused.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }
