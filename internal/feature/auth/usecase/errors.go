// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrMemberNotFound is returned when the credential store has no row for a username.
	ErrMemberNotFound = errors.New("member not found")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidSessionToken is returned when a session cookie is malformed or its signature does not verify.
	ErrInvalidSessionToken = errors.New("invalid session token")
)
