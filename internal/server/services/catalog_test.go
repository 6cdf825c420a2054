package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T, rm *fakeRepoManager) *CatalogService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewCatalogService(db, rm, discardLogger())
}

func TestCatalog_CreateAndList(t *testing.T) {
	rm := newFakeRepoManager()
	s := newCatalogService(t, rm)
	ctx := context.Background()

	fn, err := s.Create(ctx, "  Consultoria ", decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), fn.ID)
	assert.Equal(t, "Consultoria", fn.Name)

	_, err = s.Create(ctx, "Consultoria", decimal.NewFromInt(120))
	require.NoError(t, err, "names are not unique")

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCatalog_CreateValidation(t *testing.T) {
	s := newCatalogService(t, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Create(ctx, " ", decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = s.Create(ctx, "Suporte", decimal.Zero)
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = s.Create(ctx, "Suporte", decimal.NewFromInt(-5))
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestCatalog_StoreFailure(t *testing.T) {
	rm := newFakeRepoManager()
	rm.f.err = common.ErrStoreUnavailable
	s := newCatalogService(t, rm)

	_, err := s.Create(context.Background(), "Suporte", decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))

	_, err = s.List(context.Background())
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))
}
