package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/archive"
	"github.com/dmitrijs2005/worklog/internal/server/export"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
)

// ReportService builds monthly reports and their exports. Every read goes
// through the caller's visibility scope.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Metrics
	archiver    archive.Archiver
	currency    string
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, mx *metrics.Metrics,
	archiver archive.Archiver, currency string) *ReportService {
	if archiver == nil {
		archiver = archive.Noop{}
	}
	return &ReportService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "reports"),
		metrics:     mx,
		archiver:    archiver,
		currency:    currency,
	}
}

func (s *ReportService) visible(ctx context.Context, id access.Identity) ([]models.Session, error) {
	rows, err := s.repomanager.Sessions(s.db).List(ctx, id.Scope())
	if err != nil {
		return nil, fmt.Errorf("error loading sessions: %w", err)
	}
	return rows, nil
}

// Years lists the years that have sessions visible to id.
func (s *ReportService) Years(ctx context.Context, id access.Identity) ([]int, error) {
	rows, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.ListYears(rows), nil
}

// Report filters the sessions visible to id. An empty selection is not an
// error; Summary.Empty reports it. Owner choices are only offered to admins.
func (s *ReportService) Report(ctx context.Context, id access.Identity, f report.Filter) (*report.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}

	selected := report.Apply(id.Scope(), rows, f)
	options := report.Options(rows)
	if !id.IsAdmin() {
		options.Owners = []string{}
	}

	return &report.Report{
		Filter:  f,
		Period:  report.PeriodLabel(f.Year, f.Month),
		Rows:    selected,
		Summary: report.Summarize(selected),
		Options: options,
	}, nil
}

// Export renders the report selected by f as format. Nothing matching yields
// common.ErrEmptyResult. The file is archived on a best-effort basis.
func (s *ReportService) Export(ctx context.Context, id access.Identity, f report.Filter, format export.Format) (*export.File, error) {
	rep, err := s.Report(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if rep.Summary.Empty() {
		return nil, common.ErrEmptyResult
	}

	body, err := export.Render(format, export.DocumentInput{
		Rows:           rep.Rows,
		Summary:        rep.Summary,
		Period:         rep.Period,
		RequestedBy:    id.Username,
		FunctionFilter: f.FunctionLabel(),
		Currency:       s.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", format, err)
	}

	file := &export.File{
		Name:        report.FileName(f.Year, f.Month, format.Extension()),
		ContentType: format.ContentType(),
		Body:        body,
	}

	key := archive.Key(id, f.Year, f.Month, file.Name)
	if err := s.archiver.Store(ctx, key, file.ContentType, file.Body); err != nil {
		s.logger.Warn(ctx, "report archive failed", "key", key, "error", err)
	}

	s.metrics.ExportGenerated(string(format))
	s.logger.Info(ctx, "report exported", "username", id.Username, "file", file.Name, "rows", rep.Summary.Count)
	return file, nil
}
