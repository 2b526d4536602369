package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

type stubPriceStore struct {
	records map[int64]*models.PriceRecord
}

func (s *stubPriceStore) Upsert(p *models.PriceRecord) error {
	if s.records == nil {
		s.records = make(map[int64]*models.PriceRecord)
	}
	p.ID = int64(len(s.records) + 1)
	s.records[p.ProductID] = p
	return nil
}

func (s *stubPriceStore) GetByProductID(productID int64) (*models.PriceRecord, error) {
	p, ok := s.records[productID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type stubProductChecker struct {
	status lookup.Status
	err    error
}

func (c *stubProductChecker) Exists(ctx context.Context, productID int64) (lookup.Status, error) {
	return c.status, c.err
}

func TestCreateOrUpdatePrice_SavesWhenProductExists(t *testing.T) {
	store := &stubPriceStore{}
	svc := NewPriceService(store, &stubProductChecker{status: lookup.StatusFound})

	record, err := svc.CreateOrUpdatePrice(context.Background(), 1, decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ProductID)
	assert.True(t, record.Price.Equal(decimal.RequireFromString("19.99")))

	saved, err := svc.GetPriceByProductID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, saved.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestCreateOrUpdatePrice_RejectsMissingProduct(t *testing.T) {
	store := &stubPriceStore{}
	svc := NewPriceService(store, &stubProductChecker{status: lookup.StatusNotFound})

	_, err := svc.CreateOrUpdatePrice(context.Background(), 1, decimal.NewFromInt(10))
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Empty(t, store.records)
}

func TestCreateOrUpdatePrice_RejectsWhenProductServiceDown(t *testing.T) {
	store := &stubPriceStore{}
	svc := NewPriceService(store, &stubProductChecker{status: lookup.StatusUnavailable})

	_, err := svc.CreateOrUpdatePrice(context.Background(), 1, decimal.NewFromInt(10))
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
	assert.Empty(t, store.records)
}

func TestCreateOrUpdatePrice_Validation(t *testing.T) {
	svc := NewPriceService(&stubPriceStore{}, &stubProductChecker{status: lookup.StatusFound})

	_, err := svc.CreateOrUpdatePrice(context.Background(), 0, decimal.NewFromInt(10))
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	_, err = svc.CreateOrUpdatePrice(context.Background(), 1, decimal.RequireFromString("-0.01"))
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestCreateOrUpdatePrice_CheckerErrorStaysInternal(t *testing.T) {
	store := &stubPriceStore{}
	checker := &stubProductChecker{err: errors.New("product id must be positive, got -1")}
	svc := NewPriceService(store, checker)

	_, err := svc.CreateOrUpdatePrice(context.Background(), 1, decimal.NewFromInt(10))
	require.Error(t, err)

	// A checker failure is a server-side fault: it must surface as a
	// generic error, never as a client-visible message carrying the
	// raw error text.
	_, ok := utils.AsAppError(err)
	assert.False(t, ok)
	assert.Empty(t, store.records)
}

func TestGetPriceByProductID_NotFound(t *testing.T) {
	svc := NewPriceService(&stubPriceStore{}, &stubProductChecker{status: lookup.StatusFound})

	_, err := svc.GetPriceByProductID(context.Background(), 7)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

type stubInventoryStore struct {
	records map[int64]*models.InventoryRecord
}

func (s *stubInventoryStore) Upsert(inv *models.InventoryRecord) error {
	if s.records == nil {
		s.records = make(map[int64]*models.InventoryRecord)
	}
	inv.ID = int64(len(s.records) + 1)
	s.records[inv.ProductID] = inv
	return nil
}

func (s *stubInventoryStore) GetByProductID(productID int64) (*models.InventoryRecord, error) {
	inv, ok := s.records[productID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return inv, nil
}

func TestUpdateInventory_SavesWhenProductExists(t *testing.T) {
	store := &stubInventoryStore{}
	svc := NewInventoryService(store, &stubProductChecker{status: lookup.StatusFound})

	record, err := svc.UpdateInventory(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, record.Quantity)

	saved, err := svc.GetInventoryByProductID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.Quantity)
}

func TestUpdateInventory_RejectsMissingProduct(t *testing.T) {
	store := &stubInventoryStore{}
	svc := NewInventoryService(store, &stubProductChecker{status: lookup.StatusNotFound})

	_, err := svc.UpdateInventory(context.Background(), 1, 5)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Empty(t, store.records)
}

func TestUpdateInventory_RejectsWhenProductServiceDown(t *testing.T) {
	store := &stubInventoryStore{}
	svc := NewInventoryService(store, &stubProductChecker{status: lookup.StatusUnavailable})

	_, err := svc.UpdateInventory(context.Background(), 1, 5)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
	assert.Empty(t, store.records)
}

func TestUpdateInventory_CheckerErrorStaysInternal(t *testing.T) {
	store := &stubInventoryStore{}
	checker := &stubProductChecker{err: errors.New("product id must be positive, got -1")}
	svc := NewInventoryService(store, checker)

	_, err := svc.UpdateInventory(context.Background(), 1, 5)
	require.Error(t, err)

	_, ok := utils.AsAppError(err)
	assert.False(t, ok)
	assert.Empty(t, store.records)
}

func TestUpdateInventory_RejectsNegativeQuantity(t *testing.T) {
	svc := NewInventoryService(&stubInventoryStore{}, &stubProductChecker{status: lookup.StatusFound})

	_, err := svc.UpdateInventory(context.Background(), 1, -1)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}
