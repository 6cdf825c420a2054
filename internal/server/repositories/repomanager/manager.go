package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/functions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Functions(db dbx.DBTX) functions.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
