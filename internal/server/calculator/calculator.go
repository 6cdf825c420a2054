// Package calculator turns a start/end pair and an hourly rate into billed
// hours and a monetary total.
package calculator

import (
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Result is the outcome of Compute. Nothing is rounded; rounding happens
// when values are rendered.
type Result struct {
	Hours float64
	Total decimal.Decimal
}

// Compute bills the interval [start, end) at rate. It fails with
// common.ErrInvertedInterval unless end is strictly after start.
func Compute(start, end time.Time, rate decimal.Decimal) (Result, error) {
	if !end.After(start) {
		return Result{}, common.ErrInvertedInterval
	}

	elapsed := end.Sub(start)
	seconds := decimal.New(elapsed.Nanoseconds(), -9)

	return Result{
		Hours: elapsed.Seconds() / 3600,
		Total: rate.Mul(seconds).Div(secondsPerHour),
	}, nil
}
