package sessions

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/timex"
)

// SQLRepository stores timestamps as wall-clock text and reads them back in loc.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	loc     *time.Location
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect, loc *time.Location) *SQLRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SQLRepository{db: db, dialect: dialect, loc: loc}
}

func (r *SQLRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query := r.dialect.Rebind(
		`INSERT INTO sessions (start_time, end_time, function_name, total_amount, owner)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query,
		timex.FormatStorage(s.Start.In(r.loc)),
		timex.FormatStorage(s.End.In(r.loc)),
		s.FunctionName,
		s.TotalAmount,
		s.Owner,
	).Scan(&s.ID)
	if err != nil {
		return nil, dbx.StoreError(err)
	}
	return s, nil
}

func (r *SQLRepository) List(ctx context.Context, scope access.Scope) ([]models.Session, error) {
	query := `SELECT id, start_time, end_time, function_name, total_amount, owner FROM sessions`
	var args []any
	if !scope.IsUnrestricted() {
		query += ` WHERE owner = ?`
		args = append(args, scope.Owner())
	}
	query = r.dialect.Rebind(query + ` ORDER BY id`)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.StoreError(err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var (
			s          models.Session
			start, end string
			owner      sql.NullString
		)
		if err := rows.Scan(&s.ID, &start, &end, &s.FunctionName, &s.TotalAmount, &owner); err != nil {
			return nil, dbx.StoreError(err)
		}
		if s.Start, err = timex.ParseStorage(start, r.loc); err != nil {
			return nil, dbx.StoreError(err)
		}
		if s.End, err = timex.ParseStorage(end, r.loc); err != nil {
			return nil, dbx.StoreError(err)
		}
		s.Owner = common.UnknownOwner
		if owner.Valid {
			s.Owner = owner.String
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError(err)
	}
	return result, nil
}
