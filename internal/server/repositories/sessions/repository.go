// Package sessions is the ledger of recorded service sessions. Every read is
// parameterized by an access.Scope.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/server/access"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) (*models.Session, error)
	// List returns the sessions visible under scope in insertion order.
	List(ctx context.Context, scope access.Scope) ([]models.Session, error)
}
