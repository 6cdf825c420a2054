// Package repomanager provides a concrete RepositoryManager for the supported
// SQL dialects, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/migrations"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/functions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends repositories for one dialect. Session
// timestamps are read back in loc.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	loc     *time.Location
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Functions(db dbx.DBTX) functions.Repository {
	return functions.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLRepository(db, m.dialect, m.loc)
}

// gooseUp is a seam for testing the goose provider run.
var gooseUp = func(ctx context.Context, p *goose.Provider) error {
	_, err := p.Up(ctx)
	return err
}

// RunMigrations applies the embedded migrations for the manager's dialect.
// Applied versions are recorded by goose, so running it again is a no-op.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	fsys, goMigrations, err := migrations.Source(string(m.dialect))
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(goose.Dialect(m.dialect.GooseDialect()), db, fsys,
		goose.WithGoMigrations(goMigrations...),
		goose.WithDisableGlobalRegistry(true),
		goose.WithLogger(goose.NopLogger()),
	)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := gooseUp(ctx, p); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect, loc *time.Location) (RepositoryManager, error) {
	if _, err := dbx.ParseDialect(string(dialect)); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	return &SQLRepositoryManager{dialect: dialect, loc: loc}, nil
}

// Open connects to the database for dialect and verifies the connection.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, dbx.StoreError(err)
	}
	if dialect == dbx.DialectSQLite {
		// one writer at a time avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, dbx.StoreError(err)
	}
	return db, nil
}
