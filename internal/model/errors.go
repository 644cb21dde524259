package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken is returned when no credential accompanies a request.
	ErrMissingToken = errors.New("missing authorization token")
	// ErrInvalidToken is returned when a presented token fails validation.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrPermissionDenied is returned when an authenticated actor lacks the
	// required privilege.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSelfDeletion is returned when an actor attempts to delete their own
	// account.
	ErrSelfDeletion = errors.New("cannot delete own account")
	// ErrIdentityTaken is returned when a provider identity is already
	// linked to another account.
	ErrIdentityTaken = errors.New("provider account already in use")
	// ErrIdentityLinked is returned when an account already carries a
	// different identity of the same provider.
	ErrIdentityLinked = errors.New("oauth already connected, remove current to connect new")
	// ErrInvalidFile is returned when an uploaded file fails validation.
	ErrInvalidFile = errors.New("invalid file")
	// ErrNotConfigured is returned when an optional integration is disabled.
	ErrNotConfigured = errors.New("not configured")
)

// UpstreamError carries a non-2xx response from the OAuth provider,
// including the raw body it returned.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}
