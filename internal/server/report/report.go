// Package report filters and aggregates ledger rows for the monthly report
// screen and its exports.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/shopspring/decimal"
)

// All disables the function or owner filter.
const All = "all"

// AllFunctionsLabel is how an unset function filter is shown to people.
const AllFunctionsLabel = "Todas"

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Marco", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Filter selects the rows of one calendar month. Function and Owner are
// exact matches unless empty or All.
type Filter struct {
	Year     int
	Month    int
	Function string
	Owner    string
}

// Validate checks the calendar fields.
func (f Filter) Validate() error {
	if f.Year < 1 {
		return fmt.Errorf("%w: year must be positive", common.ErrValidation)
	}
	if f.Month < 1 || f.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", common.ErrValidation)
	}
	return nil
}

// FunctionLabel is the function filter for display.
func (f Filter) FunctionLabel() string {
	if isAll(f.Function) {
		return AllFunctionsLabel
	}
	return f.Function
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Summary holds the aggregate metrics of a row set.
type Summary struct {
	TotalAmount decimal.Decimal
	TotalHours  float64
	Count       int
}

// Empty reports whether the summary describes no rows at all.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// FilterOptions are the choices offered by the report screen.
type FilterOptions struct {
	Functions []string
	Owners    []string
}

// Report is one rendered report: the selected rows in insertion order, their
// summary, a period label and the available filter choices.
type Report struct {
	Filter  Filter
	Period  string
	Rows    []models.Session
	Summary Summary
	Options FilterOptions
}

// ListYears returns the distinct start years of rows, ascending.
func ListYears(rows []models.Session) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range rows {
		y := r.Start.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Apply keeps the rows visible under scope that started in the filter's
// month and match its function and owner. A session is counted under its
// start month only. Under a restricted scope the owner filter is ignored.
// The result is ordered by ID.
func Apply(scope access.Scope, rows []models.Session, f Filter) []models.Session {
	out := make([]models.Session, 0, len(rows))
	for _, r := range rows {
		if !scope.Allows(r.Owner) {
			continue
		}
		if r.Start.Year() != f.Year || int(r.Start.Month()) != f.Month {
			continue
		}
		if !isAll(f.Function) && r.FunctionName != f.Function {
			continue
		}
		if scope.IsUnrestricted() && !isAll(f.Owner) && r.Owner != f.Owner {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b models.Session) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Summarize sums totals and hours over rows. No rows yields all zeros.
func Summarize(rows []models.Session) Summary {
	s := Summary{TotalAmount: decimal.Zero}
	for _, r := range rows {
		s.TotalAmount = s.TotalAmount.Add(r.TotalAmount)
		s.TotalHours += r.Hours()
		s.Count++
	}
	return s
}

// Options lists the distinct function names and owners among rows, sorted.
func Options(rows []models.Session) FilterOptions {
	return FilterOptions{
		Functions: distinct(rows, func(s models.Session) string { return s.FunctionName }),
		Owners:    distinct(rows, func(s models.Session) string { return s.Owner }),
	}
}

func distinct(rows []models.Session, key func(models.Session) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// MonthName is the Portuguese month name used on reports and file names.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("Mes%d", month)
	}
	return monthNames[month-1]
}

// PeriodLabel renders "<MonthName> / <Year>".
func PeriodLabel(year, month int) string {
	return fmt.Sprintf("%s / %d", MonthName(month), year)
}

// FileName is the download name of an export, e.g. Relatorio_Marco_2024.pdf.
func FileName(year, month int, ext string) string {
	return fmt.Sprintf("Relatorio_%s_%d.%s", MonthName(month), year, strings.TrimPrefix(ext, "."))
}
