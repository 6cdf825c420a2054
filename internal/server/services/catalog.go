package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// CatalogService manages the billable job functions.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{db: db, repomanager: m, logger: logger.With("module", "catalog")}
}

// Create adds a function. The name must be non-blank and the rate positive.
func (s *CatalogService) Create(ctx context.Context, name string, rate decimal.Decimal) (*models.Function, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: function name is required", common.ErrValidation)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: hourly rate must be greater than zero", common.ErrValidation)
	}

	fn, err := s.repomanager.Functions(s.db).Create(ctx, &models.Function{Name: name, HourlyRate: rate})
	if err != nil {
		return nil, fmt.Errorf("error creating function: %w", err)
	}

	s.logger.Info(ctx, "function created", "id", fn.ID, "name", fn.Name, "rate", fn.HourlyRate.String())
	return fn, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Function, error) {
	fns, err := s.repomanager.Functions(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing functions: %w", err)
	}
	return fns, nil
}
