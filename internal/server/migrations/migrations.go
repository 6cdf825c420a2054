// Package migrations embeds the versioned goose schema, one directory per dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Source returns the SQL files of one dialect directory together with the
// Go migrations that directory relies on.
func Source(dir string) (fs.FS, []*goose.Migration, error) {
	fsys, err := fs.Sub(Migrations, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("migrations %q: %w", dir, err)
	}
	if dir == "sqlite" {
		return fsys, []*goose.Migration{
			goose.NewGoMigration(2,
				&goose.GoFunc{RunTx: addSessionsOwner},
				&goose.GoFunc{RunTx: dropSessionsOwner}),
		}, nil
	}
	return fsys, nil, nil
}

// addSessionsOwner adds sessions.owner when it is missing. SQLite has no
// ADD COLUMN IF NOT EXISTS.
func addSessionsOwner(ctx context.Context, tx *sql.Tx) error {
	has, err := hasColumn(ctx, tx, "sessions", "owner")
	if err != nil || has {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE sessions ADD COLUMN owner TEXT`)
	return err
}

func dropSessionsOwner(ctx context.Context, tx *sql.Tx) error {
	has, err := hasColumn(ctx, tx, "sessions", "owner")
	if err != nil || !has {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE sessions DROP COLUMN owner`)
	return err
}

func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}
