// Package models holds the typed records the stores hand out.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is one recorded billable service engagement.
//
// FunctionName is a snapshot of the function's name when the session was
// recorded, not a reference. Owner is "N/A" for rows recorded before
// ownership was tracked.
type Session struct {
	ID           int64
	Start        time.Time
	End          time.Time
	FunctionName string
	TotalAmount  decimal.Decimal
	Owner        string
}

// Hours is the elapsed time between Start and End in hours.
func (s Session) Hours() float64 {
	return s.End.Sub(s.Start).Seconds() / 3600
}
