// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrInvalidCredentials indicates that the username is unknown, the password does not match,
	// or the principal has no roles at all.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountDisabled indicates that the principal exists but its active flag is false.
	ErrAccountDisabled = errors.New("account is disabled")
)
