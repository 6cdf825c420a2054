package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/cryptox"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/metrics"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/functions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	cryptox.DigestCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func scrape(t *testing.T, mx *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	mx.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	rows    map[string]models.User
	err     error
	deleted []string
}

func newFakeUsersRepo(users ...models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{rows: map[string]models.User{}}
	for _, u := range users {
		f.rows[u.Username] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[u.Username]; ok {
		return common.ErrDuplicateUser
	}
	f.rows[u.Username] = *u
	return nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.rows[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.rows {
		out = append(out, models.User{Username: u.Username, Role: u.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[username]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, username)
	f.deleted = append(f.deleted, username)
	return nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.rows), nil
}

type fakeFunctionsRepo struct {
	rows []models.Function
	err  error
}

func (f *fakeFunctionsRepo) Create(ctx context.Context, fn *models.Function) (*models.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	fn.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *fn)
	return fn, nil
}

func (f *fakeFunctionsRepo) List(ctx context.Context) ([]models.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Function(nil), f.rows...), nil
}

func (f *fakeFunctionsRepo) FindFirstByName(ctx context.Context, name string) (*models.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, fn := range f.rows {
		if fn.Name == name {
			fn := fn
			return &fn, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeSessionsRepo struct {
	rows   []models.Session
	err    error
	scopes []access.Scope
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *s)
	return s, nil
}

func (f *fakeSessionsRepo) List(ctx context.Context, scope access.Scope) ([]models.Session, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Session
	for _, s := range f.rows {
		if scope.Allows(s.Owner) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFunctionsRepo
	s *fakeSessionsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), f: &fakeFunctionsRepo{}, s: &fakeSessionsRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository         { return m.u }
func (m *fakeRepoManager) Functions(db dbx.DBTX) functions.Repository { return m.f }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository   { return m.s }
