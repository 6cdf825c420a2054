package rest

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	identityKey     = "identity"
)

// requestID tags every request with an id, reusing the caller's if present.
// The id rides on the request context, so every log line written while
// serving the request carries it.
func (s *RESTServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *RESTServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(started)
		status := c.Writer.Status()

		s.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"elapsed", elapsed,
		)
	}
}

// authenticate resolves the bearer token into an access.Identity.
func (s *RESTServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			s.respondError(c, common.ErrInvalidToken)
			c.Abort()
			return
		}

		id, err := s.services.Users.Identify(strings.TrimSpace(token))
		if err != nil {
			s.respondError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func (s *RESTServer) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity(c).IsAdmin() {
			s.respondError(c, common.ErrorForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func identity(c *gin.Context) access.Identity {
	id, _ := c.Get(identityKey)
	v, _ := id.(access.Identity)
	return v
}
