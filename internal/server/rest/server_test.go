package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/worklog/internal/cryptox"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/config"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	cryptox.DigestCost = bcrypt.MinCost
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

// newTestAPI wires the real services to a migrated SQLite file with the seed
// admin and one regular user, alice/secret.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.Open(ctx, dbx.DialectSQLite, filepath.Join(t.TempDir(), "worklog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	loc := time.FixedZone("BRT", -3*60*60)
	m, err := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite, loc)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	mx := metrics.New()

	us := services.NewUserService(db, m, cfg, logger, mx)
	_, err = us.EnsureSeedAdmin(ctx)
	require.NoError(t, err)
	_, err = us.Register(ctx, "alice", "secret", "regular")
	require.NoError(t, err)

	srv := NewRESTServer(":0", logger, mx, loc, Services{
		Users:   us,
		Catalog: services.NewCatalogService(db, m, logger),
		Ledger:  services.NewLedgerService(db, m, logger, mx, loc),
		Reports: services.NewReportService(db, m, logger, mx, nil, cfg.CurrencySymbol),
	})

	return &testAPI{t: t, router: srv.Router()}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(username, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp loginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "admin", resp.Role)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	rec = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "ghost", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", errorOf(t, rec))

	rec = api.do(http.MethodGet, "/api/me", api.login("alice", "secret"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me identityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, identityResponse{Username: "alice", Role: "regular"}, me)
}

func TestAdminRoutes_ForbiddenForRegularUser(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("alice", "secret")

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/users", nil},
		{http.MethodPost, "/api/users", gin.H{"username": "bob", "password": "x", "role": "regular"}},
		{http.MethodDelete, "/api/users/admin", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, token, tt.body)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestUsers_AdminFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("admin", "admin123")

	rec := api.do(http.MethodPost, "/api/users", token, gin.H{"username": "bob", "password": "pw", "role": "regular"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/users", token, gin.H{"username": "bob", "password": "pw", "role": "regular"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/users", token, gin.H{"username": "  dave  ", "password": "pw", "role": "regular"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, userResponse{Username: "dave", Role: "regular"}, created)

	rec = api.do(http.MethodDelete, "/api/users/dave", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/users", token, gin.H{"username": "carol", "password": "pw", "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Equal(t, []userResponse{
		{Username: "admin", Role: "admin"},
		{Username: "alice", Role: "regular"},
		{Username: "bob", Role: "regular"},
	}, users)

	rec = api.do(http.MethodDelete, "/api/users/admin", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/api/users/bob", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/users/bob", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFunctionsAndSessions(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("alice", "secret")

	rec := api.do(http.MethodPost, "/api/functions", token, gin.H{"name": "Consultoria", "hourly_rate": "100"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/functions", token, gin.H{"name": "Free", "hourly_rate": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/functions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fns []functionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fns))
	require.Len(t, fns, 1)
	assert.Equal(t, "Consultoria", fns[0].Name)
	assert.True(t, fns[0].HourlyRate.Equal(decimal.NewFromInt(100)))

	rec = api.do(http.MethodPost, "/api/sessions", token, gin.H{
		"start": "2024-03-05 09:00", "end": "2024-03-05 10:30", "function_name": "Consultoria",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rr recordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rr))
	assert.InDelta(t, 1.5, rr.Hours, 1e-9)
	assert.True(t, rr.Session.TotalAmount.Equal(decimal.NewFromInt(150)), rr.Session.TotalAmount.String())
	assert.Equal(t, "alice", rr.Session.Owner)

	rec = api.do(http.MethodPost, "/api/sessions", token, gin.H{
		"start": "2024-03-05 10:30", "end": "2024-03-05 09:00", "function_name": "Consultoria",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodPost, "/api/sessions", token, gin.H{
		"start": "2024-03-05T12:00:00.2Z", "end": "2024-03-05T12:00:00.7Z", "function_name": "Consultoria",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/sessions", token, gin.H{
		"start": "2024-03-05 09:00", "end": "2024-03-05 10:00", "function_name": "Unknown",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/sessions", token, gin.H{
		"start": "yesterday", "end": "2024-03-05 10:00", "function_name": "Consultoria",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedSessions(t *testing.T, api *testAPI) (admin, alice string) {
	t.Helper()
	admin = api.login("admin", "admin123")
	alice = api.login("alice", "secret")

	rec := api.do(http.MethodPost, "/api/functions", admin, gin.H{"name": "Consultoria", "hourly_rate": "100"})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, s := range []struct{ token, start, end string }{
		{alice, "2024-03-05 09:00", "2024-03-05 11:00"},
		{admin, "2024-03-06 14:00", "2024-03-06 15:00"},
		{alice, "2023-12-01 08:00", "2023-12-01 09:00"},
	} {
		rec := api.do(http.MethodPost, "/api/sessions", s.token, gin.H{"start": s.start, "end": s.end, "function_name": "Consultoria"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	return admin, alice
}

func TestReports(t *testing.T) {
	api := newTestAPI(t)
	admin, alice := seedSessions(t, api)

	rec := api.do(http.MethodGet, "/api/reports/years", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var years yearsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &years))
	assert.Equal(t, []int{2023, 2024}, years.Years)

	rec = api.do(http.MethodGet, "/api/reports?year=2024&month=3", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rep reportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Summary.Count)
	assert.True(t, rep.Summary.TotalAmount.Equal(decimal.NewFromInt(200)))
	assert.Empty(t, rep.Options.Owners)
	assert.Equal(t, "all", rep.Filter.Function)

	rec = api.do(http.MethodGet, "/api/reports?year=2024&month=3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep = reportResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.Summary.Count)
	assert.InDelta(t, 3.0, rep.Summary.TotalHours, 1e-9)
	assert.Equal(t, []string{"admin", "alice"}, rep.Options.Owners)

	rec = api.do(http.MethodGet, "/api/reports?year=2024&month=3&owner=alice", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep = reportResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Summary.Count)

	rec = api.do(http.MethodGet, "/api/reports?year=2024&month=7", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep = reportResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 0, rep.Summary.Count)
	assert.NotEmpty(t, rep.Message)
	assert.NotNil(t, rep.Rows)

	rec = api.do(http.MethodGet, "/api/reports?year=2024&month=13", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/reports?year=abc&month=3", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	api := newTestAPI(t)
	admin, _ := seedSessions(t, api)

	rec := api.do(http.MethodGet, "/api/reports/export/xlsx?year=2024&month=3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="Relatorio_Marco_2024.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = api.do(http.MethodGet, "/api/reports/export/pdf?year=2024&month=3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="Relatorio_Marco_2024.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = api.do(http.MethodGet, "/api/reports/export/pdf?year=2024&month=7", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no data for the selected filters", errorOf(t, rec))

	rec = api.do(http.MethodGet, "/api/reports/export/csv?year=2024&month=3", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodGet, "/ping", "", nil)

	rec := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `worklog_http_request_duration_seconds_count{method="GET",route="/ping",status="200"} 1`)
}
