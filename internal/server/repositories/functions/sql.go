package functions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts fn and fills in the assigned ID.
func (r *SQLRepository) Create(ctx context.Context, fn *models.Function) (*models.Function, error) {
	query := r.dialect.Rebind(
		`INSERT INTO functions (name, hourly_rate)
		 VALUES (?, ?)
		 RETURNING id`)

	if err := r.db.QueryRowContext(ctx, query, fn.Name, fn.HourlyRate).Scan(&fn.ID); err != nil {
		return nil, dbx.StoreError(err)
	}
	return fn, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Function, error) {
	query := `SELECT id, name, hourly_rate FROM functions ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.StoreError(err)
	}
	defer rows.Close()

	var result []models.Function
	for rows.Next() {
		var f models.Function
		if err := rows.Scan(&f.ID, &f.Name, &f.HourlyRate); err != nil {
			return nil, dbx.StoreError(err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError(err)
	}
	return result, nil
}

func (r *SQLRepository) FindFirstByName(ctx context.Context, name string) (*models.Function, error) {
	query := r.dialect.Rebind(
		`SELECT id, name, hourly_rate FROM functions
		 WHERE name = ?
		 ORDER BY id
		 LIMIT 1`)

	f := &models.Function{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&f.ID, &f.Name, &f.HourlyRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("function %q: %w", name, common.ErrorNotFound)
		}
		return nil, dbx.StoreError(err)
	}
	return f, nil
}
