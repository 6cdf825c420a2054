// Package models defines the API payloads the worklog CLI exchanges with the
// server.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identity is who the CLI is logged in as.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether admin commands are available.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// Token is the result of a successful login.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// Identity returns the identity the token was issued to.
func (t Token) Identity() Identity {
	return Identity{Username: t.Username, Role: t.Role}
}

type Function struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// SessionInput is a session as entered by the user; timestamps are sent as
// typed and parsed by the server.
type SessionInput struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	FunctionName string `json:"function_name"`
}

type Session struct {
	ID           int64           `json:"id"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	FunctionName string          `json:"function_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Owner        string          `json:"owner"`
}

// Hours is the elapsed time of the session in hours.
func (s Session) Hours() float64 {
	return s.End.Sub(s.Start).Seconds() / 3600
}

// RecordedSession is the server's answer to a recorded session.
type RecordedSession struct {
	Session Session `json:"session"`
	Hours   float64 `json:"hours"`
}

// Filter selects a month of sessions. Empty Function/Owner mean "all".
type Filter struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Function string `json:"function"`
	Owner    string `json:"owner"`
}

type Summary struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalHours  float64         `json:"total_hours"`
	Count       int             `json:"count"`
}

type Options struct {
	Functions []string `json:"functions"`
	Owners    []string `json:"owners"`
}

type Report struct {
	Period  string    `json:"period"`
	Filter  Filter    `json:"filter"`
	Rows    []Session `json:"rows"`
	Summary Summary   `json:"summary"`
	Options Options   `json:"options"`
	Message string    `json:"message,omitempty"`
}

// ExportFile is a downloaded report document.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewUser is the admin form for creating an account.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
