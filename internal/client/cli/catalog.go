package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/shopspring/decimal"
)

func (a *App) Functions(ctx context.Context) error {
	fns, err := a.api.Functions(ctx)
	if err != nil {
		return err
	}
	if len(fns) == 0 {
		fmt.Fprintln(a.out, "No functions yet, use addfunction")
		return nil
	}

	tw := newTable(a.out, "ID", "Name", "Hourly rate")
	for _, f := range fns {
		tw.row(f.ID, f.Name, f.HourlyRate.StringFixed(2))
	}
	return tw.flush()
}

func (a *App) AddFunction(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Function name", a.out)
	if err != nil {
		return err
	}
	rateText, err := getSimpleText(a.reader, "Hourly rate", a.out)
	if err != nil {
		return err
	}
	rate, err := decimal.NewFromString(rateText)
	if err != nil {
		return fmt.Errorf("%w: invalid hourly rate %q", common.ErrValidation, rateText)
	}

	fn, err := a.api.AddFunction(ctx, name, rate)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Function #%d %q created at %s/h\n", fn.ID, fn.Name, fn.HourlyRate.StringFixed(2))
	return nil
}

// AddSession records a session owned by the logged-in user. Timestamps are
// sent as typed; the server parses them.
func (a *App) AddSession(ctx context.Context) error {
	fn, err := getSimpleText(a.reader, "Function name", a.out)
	if err != nil {
		return err
	}
	start, err := getSimpleText(a.reader, "Start (YYYY-MM-DD HH:MM)", a.out)
	if err != nil {
		return err
	}
	end, err := getSimpleText(a.reader, "End (YYYY-MM-DD HH:MM)", a.out)
	if err != nil {
		return err
	}

	rec, err := a.api.AddSession(ctx, models.SessionInput{Start: start, End: end, FunctionName: fn})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Session #%d recorded: %.2f h, total %s\n",
		rec.Session.ID, rec.Hours, rec.Session.TotalAmount.StringFixed(2))
	return nil
}
