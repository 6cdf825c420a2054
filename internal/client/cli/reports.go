package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/timex"
)

const allChoices = "all"

func (a *App) Years(ctx context.Context) error {
	years, err := a.api.Years(ctx)
	if err != nil {
		return err
	}
	if len(years) == 0 {
		fmt.Fprintln(a.out, "No sessions recorded yet")
		return nil
	}

	s := make([]string, len(years))
	for i, y := range years {
		s[i] = strconv.Itoa(y)
	}
	fmt.Fprintln(a.out, "Years:", strings.Join(s, ", "))
	return nil
}

// promptFilter asks for the report filter. Year and month default to the
// current month; owner is only asked of admins.
func (a *App) promptFilter() (models.Filter, error) {
	now := time.Now()
	var f models.Filter

	year, err := getWithDefault(a.reader, "Year", strconv.Itoa(now.Year()), a.out)
	if err != nil {
		return f, err
	}
	if f.Year, err = strconv.Atoi(year); err != nil {
		return f, fmt.Errorf("%w: year must be a number", common.ErrValidation)
	}

	month, err := getWithDefault(a.reader, "Month (1-12)", strconv.Itoa(int(now.Month())), a.out)
	if err != nil {
		return f, err
	}
	if f.Month, err = strconv.Atoi(month); err != nil {
		return f, fmt.Errorf("%w: month must be a number", common.ErrValidation)
	}

	if f.Function, err = getWithDefault(a.reader, "Function", allChoices, a.out); err != nil {
		return f, err
	}

	f.Owner = allChoices
	if a.isAdmin() {
		if f.Owner, err = getWithDefault(a.reader, "Owner", allChoices, a.out); err != nil {
			return f, err
		}
	}

	return f, nil
}

func (a *App) Report(ctx context.Context) error {
	f, err := a.promptFilter()
	if err != nil {
		return err
	}

	rep, err := a.api.Report(ctx, f)
	if err != nil {
		return err
	}

	a.printReport(rep)
	return nil
}

func (a *App) printReport(rep *models.Report) {
	fmt.Fprintf(a.out, "%s (function: %s, owner: %s)\n", rep.Period, rep.Filter.Function, rep.Filter.Owner)

	if rep.Summary.Count == 0 {
		msg := rep.Message
		if msg == "" {
			msg = common.ErrEmptyResult.Error()
		}
		fmt.Fprintln(a.out, msg)
	} else {
		tw := newTable(a.out, "ID", "Start", "End", "Function", "Hours", "Total", "Owner")
		for _, s := range rep.Rows {
			tw.row(s.ID,
				s.Start.Format(timex.DisplayLayout),
				s.End.Format(timex.DisplayLayout),
				s.FunctionName,
				fmt.Sprintf("%.1f", s.Hours()),
				s.TotalAmount.StringFixed(2),
				s.Owner,
			)
		}
		_ = tw.flush()
		fmt.Fprintf(a.out, "Sessions: %d  Hours: %.1f h  Total: %s\n",
			rep.Summary.Count, rep.Summary.TotalHours, rep.Summary.TotalAmount.StringFixed(2))
	}

	if len(rep.Options.Functions) > 0 {
		fmt.Fprintln(a.out, "Functions:", strings.Join(rep.Options.Functions, ", "))
	}
	if len(rep.Options.Owners) > 0 {
		fmt.Fprintln(a.out, "Owners:", strings.Join(rep.Options.Owners, ", "))
	}
}

// Export downloads the selected report as xlsx or pdf into the configured
// reports directory.
func (a *App) Export(ctx context.Context, format string) error {
	var err error
	if format == "" {
		if format, err = getWithDefault(a.reader, "Format (xlsx/pdf)", "xlsx", a.out); err != nil {
			return err
		}
	}
	format = strings.ToLower(format)
	if format != "xlsx" && format != "pdf" {
		return fmt.Errorf("%w: unknown export format %q", common.ErrValidation, format)
	}

	f, err := a.promptFilter()
	if err != nil {
		return err
	}

	path, err := a.exportService.Export(ctx, format, f)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Saved", path)
	return nil
}
