package services

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/export"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = access.Identity{Username: "admin", Role: access.RoleAdmin}

type recordingArchiver struct {
	keys []string
	err  error
}

func (a *recordingArchiver) Store(ctx context.Context, key, contentType string, body []byte) error {
	a.keys = append(a.keys, key)
	return a.err
}

func ledgerFixture() *fakeRepoManager {
	rm := newFakeRepoManager()
	at := func(m time.Month, d, h int) time.Time { return time.Date(2024, m, d, h, 0, 0, 0, time.UTC) }
	rm.s.rows = []models.Session{
		{ID: 1, Start: at(3, 1, 9), End: at(3, 1, 11), FunctionName: "Consultoria", TotalAmount: decimal.NewFromInt(200), Owner: "alice"},
		{ID: 2, Start: at(3, 2, 9), End: at(3, 2, 10), FunctionName: "Suporte", TotalAmount: decimal.NewFromInt(80), Owner: "bob"},
		{ID: 3, Start: time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC),
			FunctionName: "Suporte", TotalAmount: decimal.NewFromInt(80), Owner: common.UnknownOwner},
	}
	return rm
}

func newReportService(t *testing.T, rm *fakeRepoManager, a *recordingArchiver) (*ReportService, *metrics.Metrics) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	mx := metrics.New()
	return NewReportService(db, rm, discardLogger(), mx, a, "R$"), mx
}

func TestYears_Scoped(t *testing.T) {
	rm := ledgerFixture()
	s, _ := newReportService(t, rm, &recordingArchiver{})

	years, err := s.Years(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)

	years, err = s.Years(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, years)

	assert.Equal(t, access.OwnedBy("alice"), rm.s.scopes[len(rm.s.scopes)-1])
}

func TestReport(t *testing.T) {
	s, _ := newReportService(t, ledgerFixture(), &recordingArchiver{})
	f := report.Filter{Year: 2024, Month: 3, Function: report.All, Owner: report.All}

	rep, err := s.Report(context.Background(), admin, f)
	require.NoError(t, err)
	assert.Equal(t, "Marco / 2024", rep.Period)
	assert.Len(t, rep.Rows, 2)
	assert.Equal(t, 2, rep.Summary.Count)
	assert.True(t, rep.Summary.TotalAmount.Equal(decimal.NewFromInt(280)))
	assert.Equal(t, []string{common.UnknownOwner, "alice", "bob"}, rep.Options.Owners)

	rep, err = s.Report(context.Background(), alice, f)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "alice", rep.Rows[0].Owner)
	assert.Empty(t, rep.Options.Owners, "owner choices are admin only")

	rep, err = s.Report(context.Background(), alice, report.Filter{Year: 2024, Month: 4})
	require.NoError(t, err)
	assert.True(t, rep.Summary.Empty())

	_, err = s.Report(context.Background(), alice, report.Filter{Year: 2024, Month: 0})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestExport(t *testing.T) {
	arch := &recordingArchiver{}
	s, mx := newReportService(t, ledgerFixture(), arch)
	f := report.Filter{Year: 2024, Month: 3}

	file, err := s.Export(context.Background(), admin, f, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Marco_2024.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))

	file, err = s.Export(context.Background(), admin, f, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Marco_2024.xlsx", file.Name)

	require.Len(t, arch.keys, 2)
	assert.Regexp(t, regexp.MustCompile(`^reports/2024/03/admin/.+/Relatorio_Marco_2024\.pdf$`), arch.keys[0])

	body := scrape(t, mx)
	assert.Contains(t, body, `worklog_exports_total{format="pdf"} 1`)
	assert.Contains(t, body, `worklog_exports_total{format="xlsx"} 1`)
}

func TestExport_Empty(t *testing.T) {
	arch := &recordingArchiver{}
	s, _ := newReportService(t, ledgerFixture(), arch)

	_, err := s.Export(context.Background(), alice, report.Filter{Year: 2023, Month: 7}, export.FormatPDF)
	assert.True(t, errors.Is(err, common.ErrEmptyResult))
	assert.Empty(t, arch.keys)
}

func TestExport_ArchiveFailureIsNotFatal(t *testing.T) {
	arch := &recordingArchiver{err: errors.New("bucket gone")}
	s, _ := newReportService(t, ledgerFixture(), arch)

	file, err := s.Export(context.Background(), alice, report.Filter{Year: 2024, Month: 3}, export.FormatXLSX)
	require.NoError(t, err)
	assert.NotEmpty(t, file.Body)
}

func TestReport_StoreFailure(t *testing.T) {
	rm := ledgerFixture()
	rm.s.err = common.ErrStoreUnavailable
	s, _ := newReportService(t, rm, &recordingArchiver{})

	_, err := s.Years(context.Background(), admin)
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))
}
