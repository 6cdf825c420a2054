package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

// SQLRepository implements Repository over dbx.DBTX for any supported dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts a credential row. A taken username yields common.ErrDuplicateUser.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	query := r.dialect.Rebind(
		`INSERT INTO users (username, password_digest, role)
		 VALUES (?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordDigest, user.Role); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateUser
		}
		return dbx.StoreError(err)
	}
	return nil
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT username, password_digest, role FROM users
		 WHERE username = ?`)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.PasswordDigest, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.StoreError(err)
	}

	return user, nil
}

// List returns usernames and roles ordered by username. Digests are not read.
func (r *SQLRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT username, role FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.StoreError(err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Role); err != nil {
			return nil, dbx.StoreError(err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.StoreError(err)
	}
	return result, nil
}

// Delete removes a credential row unconditionally. Protecting the seed
// account is the caller's job.
func (r *SQLRepository) Delete(ctx context.Context, username string) error {
	query := r.dialect.Rebind(`DELETE FROM users WHERE username = ?`)

	res, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return dbx.StoreError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.StoreError(err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, dbx.StoreError(err)
	}
	return n, nil
}
