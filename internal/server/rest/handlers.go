package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/server/export"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/dmitrijs2005/worklog/internal/timex"
	"github.com/gin-gonic/gin"
)

func (s *RESTServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *RESTServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: username and password are required", common.ErrValidation))
		return
	}

	token, err := s.services.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token.AccessToken,
		ExpiresAt: token.ExpiresAt,
		Username:  token.Identity.Username,
		Role:      string(token.Identity.Role),
	})
}

func (s *RESTServer) me(c *gin.Context) {
	id := identity(c)
	c.JSON(http.StatusOK, identityResponse{Username: id.Username, Role: string(id.Role)})
}

func (s *RESTServer) listFunctions(c *gin.Context) {
	fns, err := s.services.Catalog.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]functionResponse, 0, len(fns))
	for _, f := range fns {
		resp = append(resp, newFunctionResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *RESTServer) createFunction(c *gin.Context) {
	var req functionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	fn, err := s.services.Catalog.Create(c.Request.Context(), req.Name, req.HourlyRate)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFunctionResponse(*fn))
}

func (s *RESTServer) recordSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: start, end and function_name are required", common.ErrValidation))
		return
	}

	start, err := timex.ParseInput(req.Start, s.location)
	if err != nil {
		s.respondError(c, fmt.Errorf("%w: start: %w", common.ErrValidation, err))
		return
	}
	end, err := timex.ParseInput(req.End, s.location)
	if err != nil {
		s.respondError(c, fmt.Errorf("%w: end: %w", common.ErrValidation, err))
		return
	}

	session, result, err := s.services.Ledger.Record(c.Request.Context(), identity(c), start, end, req.FunctionName)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Session: newSessionResponse(*session), Hours: result.Hours})
}

func (s *RESTServer) reportYears(c *gin.Context) {
	years, err := s.services.Reports.Years(c.Request.Context(), identity(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, yearsResponse{Years: years})
}

func (s *RESTServer) monthlyReport(c *gin.Context) {
	f, err := s.parseFilter(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	rep, err := s.services.Reports.Report(c.Request.Context(), identity(c), f)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newReportResponse(rep))
}

func (s *RESTServer) exportReport(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	f, err := s.parseFilter(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	file, err := s.services.Reports.Export(c.Request.Context(), identity(c), f, format)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// parseFilter reads year, month, function and owner from the query string.
// Year and month default to the current month in the server's location.
func (s *RESTServer) parseFilter(c *gin.Context) (report.Filter, error) {
	now := time.Now().In(s.location)
	f := report.Filter{
		Year:     now.Year(),
		Month:    int(now.Month()),
		Function: c.DefaultQuery("function", report.All),
		Owner:    c.DefaultQuery("owner", report.All),
	}

	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return report.Filter{}, fmt.Errorf("%w: year must be a number", common.ErrValidation)
		}
		f.Year = year
	}
	if v := c.Query("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return report.Filter{}, fmt.Errorf("%w: month must be a number", common.ErrValidation)
		}
		f.Month = month
	}

	return f, f.Validate()
}

func (s *RESTServer) listUsers(c *gin.Context) {
	users, err := s.services.Users.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{Username: u.Username, Role: u.Role})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *RESTServer) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%w: username, password and role are required", common.ErrValidation))
		return
	}

	user, err := s.services.Users.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{Username: user.Username, Role: user.Role})
}

func (s *RESTServer) deleteUser(c *gin.Context) {
	if err := s.services.Users.Remove(c.Request.Context(), c.Param("username")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
