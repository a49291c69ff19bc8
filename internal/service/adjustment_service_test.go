package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpos/internal/dto"
	"bizpos/internal/model"
)

func TestAdjustmentAppliesSignedDelta(t *testing.T) {
	oil := &model.Product{Name: "Oil", Price: dec("7.00"), StockQuantity: 10, IsActive: true}
	products := newStubProductRepo(oil)
	adjustments := &stubAdjustmentRepo{}
	svc := NewAdjustmentService(adjustments, products, testLogger())
	who := uuid.New()

	up, err := svc.Create(context.Background(), who, dto.CreateAdjustmentRequest{
		ProductID:      oil.ID.String(),
		QuantityChange: 5,
		AdjustmentType: model.AdjustmentAdd,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, up.NewStock)
	assert.Equal(t, 15, oil.StockQuantity)

	down, err := svc.Create(context.Background(), who, dto.CreateAdjustmentRequest{
		ProductID:      oil.ID.String(),
		QuantityChange: -5,
		AdjustmentType: model.AdjustmentRemove,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, down.NewStock)
	assert.Equal(t, 10, oil.StockQuantity)

	assert.Len(t, adjustments.adjustments, 2)
}

// Adjustments have no floor: a correction may take the book value
// negative, unlike the sale flow.
func TestAdjustmentAllowsNegativeStock(t *testing.T) {
	p := &model.Product{Name: "Salt", Price: dec("1.00"), StockQuantity: 2, IsActive: true}
	products := newStubProductRepo(p)
	svc := NewAdjustmentService(&stubAdjustmentRepo{}, products, testLogger())

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateAdjustmentRequest{
		ProductID:      p.ID.String(),
		QuantityChange: -5,
		AdjustmentType: model.AdjustmentPhysicalCount,
	})
	require.NoError(t, err)
	assert.Equal(t, -3, resp.NewStock)
}

func TestAdjustmentRejectsUnknownType(t *testing.T) {
	p := &model.Product{Name: "Tea", Price: dec("2.00"), StockQuantity: 8, IsActive: true}
	products := newStubProductRepo(p)
	svc := NewAdjustmentService(&stubAdjustmentRepo{}, products, testLogger())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateAdjustmentRequest{
		ProductID:      p.ID.String(),
		QuantityChange: 1,
		AdjustmentType: "Shrinkage",
	})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 8, p.StockQuantity)
}

func TestAdjustmentRejectsZeroDelta(t *testing.T) {
	p := &model.Product{Name: "Tea", Price: dec("2.00"), StockQuantity: 8, IsActive: true}
	products := newStubProductRepo(p)
	svc := NewAdjustmentService(&stubAdjustmentRepo{}, products, testLogger())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateAdjustmentRequest{
		ProductID:      p.ID.String(),
		QuantityChange: 0,
		AdjustmentType: model.AdjustmentOther,
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAddStockShortcut(t *testing.T) {
	p := &model.Product{Name: "Rice", Price: dec("5.00"), StockQuantity: 1, IsActive: true}
	products := newStubProductRepo(p)
	adjustments := &stubAdjustmentRepo{}
	svc := NewAdjustmentService(adjustments, products, testLogger())

	resp, err := svc.AddStock(context.Background(), uuid.New(), p.ID, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.NewStock)
	assert.Equal(t, model.AdjustmentAdd, resp.AdjustmentType)

	_, err = svc.AddStock(context.Background(), uuid.New(), p.ID, 0, nil)
	assert.ErrorIs(t, err, ErrInvalid)
}
