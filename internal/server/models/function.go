package models

import "github.com/shopspring/decimal"

// Function is a billable job function with its hourly rate.
type Function struct {
	ID         int64
	Name       string
	HourlyRate decimal.Decimal
}
