// Package common defines shared constants and sentinel errors used across
// client and server layers of StepTrack. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")

	// Durable storage errors (local cache, snapshot files, DB writes).
	ErrStorageFailure = errors.New("storage failure")
)
