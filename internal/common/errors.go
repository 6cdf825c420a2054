// Package common defines shared constants and sentinel errors used across
// the worklog client and server. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Access control errors.
	ErrAccessDenied     = errors.New("access denied")
	ErrorForbidden      = errors.New("forbidden")
	ErrDuplicateUser    = errors.New("user already exists")
	ErrProtectedAccount = errors.New("account is protected")

	// Session entry and reporting.
	ErrInvertedInterval = errors.New("end must be after start")
	ErrEmptyResult      = errors.New("no data for the selected filters")

	// Validation / input errors.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
