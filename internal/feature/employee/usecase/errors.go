// Package usecase implements the business logic for the employee directory.
package usecase

import "errors"

var (
	// ErrEmployeeNotFound is returned when no employee exists for the requested ID.
	ErrEmployeeNotFound = errors.New("employee not found")
)
