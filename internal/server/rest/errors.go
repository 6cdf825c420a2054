package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error to an HTTP status and a short message safe
// to show to the caller.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrAccessDenied):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "admin role required"
	case errors.Is(err, common.ErrProtectedAccount):
		return http.StatusForbidden, "the seed administrator cannot be deleted"
	case errors.Is(err, common.ErrDuplicateUser):
		return http.StatusConflict, "username already exists"
	case errors.Is(err, common.ErrInvertedInterval):
		return http.StatusUnprocessableEntity, common.ErrInvertedInterval.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrEmptyResult):
		return http.StatusNotFound, common.ErrEmptyResult.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "storage unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}

// validationMessage keeps only the detail after the sentinel prefix.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(common.ErrValidation.Error())+2:]
	}
	return msg
}

func (s *RESTServer) respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"route", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, errorResponse{Error: msg})
}
