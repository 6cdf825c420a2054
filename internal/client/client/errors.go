package client

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/worklog/internal/common"
)

// ErrUnavailable means the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// APIError is an error answer from the server. Its message is the server's
// short description; Unwrap yields the matching common sentinel so callers
// can use errors.Is.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message, kind: kindOf(status, message)}
}

func kindOf(status int, message string) error {
	switch status {
	case http.StatusUnauthorized:
		switch message {
		case common.ErrTokenExpired.Error():
			return common.ErrTokenExpired
		case common.ErrInvalidToken.Error():
			return common.ErrInvalidToken
		}
		return common.ErrAccessDenied
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusConflict:
		return common.ErrDuplicateUser
	case http.StatusUnprocessableEntity:
		return common.ErrInvertedInterval
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusNotFound:
		if message == common.ErrEmptyResult.Error() {
			return common.ErrEmptyResult
		}
		return common.ErrorNotFound
	case http.StatusServiceUnavailable:
		return common.ErrStoreUnavailable
	}
	return errors.New(http.StatusText(status))
}
