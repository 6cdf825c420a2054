// Package functions is the catalog of billable job functions.
package functions

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, fn *models.Function) (*models.Function, error)
	List(ctx context.Context) ([]models.Function, error)
	// FindFirstByName returns the lowest-id function with the given name.
	// Names are not unique.
	FindFirstByName(ctx context.Context, name string) (*models.Function, error)
}
