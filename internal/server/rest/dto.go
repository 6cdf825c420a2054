package rest

import (
	"time"

	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

type identityResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type functionRequest struct {
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type functionResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func newFunctionResponse(f models.Function) functionResponse {
	return functionResponse{ID: f.ID, Name: f.Name, HourlyRate: f.HourlyRate}
}

type sessionRequest struct {
	Start        string `json:"start" binding:"required"`
	End          string `json:"end" binding:"required"`
	FunctionName string `json:"function_name" binding:"required"`
}

type sessionResponse struct {
	ID           int64           `json:"id"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	FunctionName string          `json:"function_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Owner        string          `json:"owner"`
}

func newSessionResponse(s models.Session) sessionResponse {
	return sessionResponse{
		ID:           s.ID,
		Start:        s.Start,
		End:          s.End,
		FunctionName: s.FunctionName,
		TotalAmount:  s.TotalAmount,
		Owner:        s.Owner,
	}
}

type recordResponse struct {
	Session sessionResponse `json:"session"`
	Hours   float64         `json:"hours"`
}

type yearsResponse struct {
	Years []int `json:"years"`
}

type filterResponse struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Function string `json:"function"`
	Owner    string `json:"owner"`
}

type summaryResponse struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalHours  float64         `json:"total_hours"`
	Count       int             `json:"count"`
}

type optionsResponse struct {
	Functions []string `json:"functions"`
	Owners    []string `json:"owners"`
}

type reportResponse struct {
	Period  string            `json:"period"`
	Filter  filterResponse    `json:"filter"`
	Rows    []sessionResponse `json:"rows"`
	Summary summaryResponse   `json:"summary"`
	Options optionsResponse   `json:"options"`
	Message string            `json:"message,omitempty"`
}

func newReportResponse(r *report.Report) reportResponse {
	rows := make([]sessionResponse, 0, len(r.Rows))
	for _, s := range r.Rows {
		rows = append(rows, newSessionResponse(s))
	}

	resp := reportResponse{
		Period: r.Period,
		Filter: filterResponse{
			Year:     r.Filter.Year,
			Month:    r.Filter.Month,
			Function: orAll(r.Filter.Function),
			Owner:    orAll(r.Filter.Owner),
		},
		Rows: rows,
		Summary: summaryResponse{
			TotalAmount: r.Summary.TotalAmount,
			TotalHours:  r.Summary.TotalHours,
			Count:       r.Summary.Count,
		},
		Options: optionsResponse{
			Functions: nonNil(r.Options.Functions),
			Owners:    nonNil(r.Options.Owners),
		},
	}
	if r.Summary.Empty() {
		resp.Message = "no data for the selected filters"
	}
	return resp
}

func orAll(v string) string {
	if v == "" {
		return report.All
	}
	return v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type userResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
