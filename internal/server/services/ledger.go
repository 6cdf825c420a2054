package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/calculator"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worklog/internal/timex"
)

// LedgerService records billable sessions.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Metrics
	loc         *time.Location
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, mx *metrics.Metrics, loc *time.Location) *LedgerService {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerService{db: db, repomanager: m, logger: logger.With("module", "ledger"), metrics: mx, loc: loc}
}

// Record bills [start, end) at the current rate of functionName and stores
// the session owned by id. The lowest-id function wins when names repeat.
// Both ends are reduced to the stored precision first, so the billed amount
// matches what is read back. Inverted intervals fail with
// common.ErrInvertedInterval before anything is written.
func (s *LedgerService) Record(ctx context.Context, id access.Identity, start, end time.Time, functionName string) (*models.Session, calculator.Result, error) {
	functionName = strings.TrimSpace(functionName)
	if functionName == "" {
		return nil, calculator.Result{}, fmt.Errorf("%w: function is required", common.ErrValidation)
	}

	fn, err := s.repomanager.Functions(s.db).FindFirstByName(ctx, functionName)
	if err != nil {
		return nil, calculator.Result{}, fmt.Errorf("error looking up function: %w", err)
	}

	if start, err = timex.Normalize(start, s.loc); err != nil {
		return nil, calculator.Result{}, fmt.Errorf("%w: start: %v", common.ErrValidation, err)
	}
	if end, err = timex.Normalize(end, s.loc); err != nil {
		return nil, calculator.Result{}, fmt.Errorf("%w: end: %v", common.ErrValidation, err)
	}

	res, err := calculator.Compute(start, end, fn.HourlyRate)
	if err != nil {
		return nil, calculator.Result{}, err
	}

	session, err := s.repomanager.Sessions(s.db).Create(ctx, &models.Session{
		Start:        start,
		End:          end,
		FunctionName: fn.Name,
		TotalAmount:  res.Total,
		Owner:        id.Username,
	})
	if err != nil {
		return nil, calculator.Result{}, fmt.Errorf("error recording session: %w", err)
	}

	s.metrics.SessionRecorded()
	s.logger.Info(ctx, "session recorded",
		"id", session.ID, "owner", session.Owner, "function", session.FunctionName,
		"hours", res.Hours, "total", res.Total.String())
	return session, res, nil
}
