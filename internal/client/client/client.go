// Package client talks to the worklog HTTP API.
//
// Client is the transport-agnostic contract the CLI depends on; RESTClient
// implements it with resty. Server errors come back as *APIError values that
// unwrap to the sentinels in internal/common, and transport failures wrap
// ErrUnavailable.
package client

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/shopspring/decimal"
)

type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (*models.Token, error)
	Logout()
	Me(ctx context.Context) (*models.Identity, error)
	Functions(ctx context.Context) ([]models.Function, error)
	AddFunction(ctx context.Context, name string, rate decimal.Decimal) (*models.Function, error)
	AddSession(ctx context.Context, in models.SessionInput) (*models.RecordedSession, error)
	Years(ctx context.Context) ([]int, error)
	Report(ctx context.Context, f models.Filter) (*models.Report, error)
	Export(ctx context.Context, format string, f models.Filter) (*models.ExportFile, error)
	Users(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, u models.NewUser) error
	DeleteUser(ctx context.Context, username string) error
}
