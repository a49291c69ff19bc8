package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

// AdjustmentService records manual stock corrections. The ledger entry
// and the stock change always land together.
type AdjustmentService struct {
	adjustments repository.AdjustmentRepository
	products    repository.ProductRepository
	log         zerolog.Logger
}

func NewAdjustmentService(
	adjustments repository.AdjustmentRepository,
	products repository.ProductRepository,
	log zerolog.Logger,
) *AdjustmentService {
	return &AdjustmentService{adjustments: adjustments, products: products, log: log}
}

// Create persists the adjustment and applies its signed delta to the
// product's stock in one transaction. Unlike sales, adjustments may
// drive stock negative (a physical count can reveal less than zero on
// the books after corrections).
func (s *AdjustmentService) Create(ctx context.Context, adjustedBy uuid.UUID, req dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: product_id", ErrInvalid)
	}
	if !model.ValidAdjustmentType(req.AdjustmentType) {
		return nil, fmt.Errorf("%w: unknown adjustment type %q", ErrInvalid, req.AdjustmentType)
	}
	if req.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: quantity_change must not be zero", ErrInvalid)
	}

	adj := &model.StockAdjustment{
		ProductID:      productID,
		QuantityChange: req.QuantityChange,
		AdjustmentType: req.AdjustmentType,
		Notes:          req.Notes,
		AdjustedByID:   &adjustedBy,
	}
	var newStock int
	err = runTx(ctx, s.adjustments.DB(), func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return notFound(err)
		}
		if err := s.adjustments.CreateTx(tx, adj); err != nil {
			return err
		}
		if err := s.products.UpdateStockTx(tx, productID, req.QuantityChange); err != nil {
			return err
		}
		newStock = product.StockQuantity + req.QuantityChange
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Int("delta", req.QuantityChange).
		Str("type", req.AdjustmentType).
		Msg("stock adjusted")

	return &dto.AdjustmentResponse{
		ID:             adj.ID.String(),
		ProductID:      productID.String(),
		QuantityChange: req.QuantityChange,
		AdjustmentType: req.AdjustmentType,
		Notes:          req.Notes,
		NewStock:       newStock,
		CreatedAt:      adj.CreatedAt.Format(time.RFC3339),
	}, nil
}

// AddStock is the restock shortcut: a positive "Add" adjustment.
func (s *AdjustmentService) AddStock(ctx context.Context, adjustedBy, productID uuid.UUID, quantity int, notes *string) (*dto.AdjustmentResponse, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalid)
	}
	return s.Create(ctx, adjustedBy, dto.CreateAdjustmentRequest{
		ProductID:      productID.String(),
		QuantityChange: quantity,
		AdjustmentType: model.AdjustmentAdd,
		Notes:          notes,
	})
}

func (s *AdjustmentService) List(ctx context.Context) ([]dto.AdjustmentResponse, error) {
	adjustments, err := s.adjustments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		resp := dto.AdjustmentResponse{
			ID:             adj.ID.String(),
			ProductID:      adj.ProductID.String(),
			QuantityChange: adj.QuantityChange,
			AdjustmentType: adj.AdjustmentType,
			Notes:          adj.Notes,
			CreatedAt:      adj.CreatedAt.Format(time.RFC3339),
		}
		if adj.Product != nil {
			resp.Product = adj.Product.Name
			resp.NewStock = adj.Product.StockQuantity
		}
		out = append(out, resp)
	}
	return out, nil
}
