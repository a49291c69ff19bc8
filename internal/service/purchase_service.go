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

// PurchaseService manages purchase orders and the receive flow that
// moves ordered quantities into stock.
type PurchaseService struct {
	orders    repository.PurchaseOrderRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewPurchaseService(
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	log zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{
		orders:    orders,
		products:  products,
		suppliers: suppliers,
		log:       log,
		now:       time.Now,
	}
}

// Create persists the order header and its lines in one transaction,
// computing each line subtotal and the order total.
func (s *PurchaseService) Create(ctx context.Context, createdBy uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier_id", ErrInvalid)
	}
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, notFound(err)
	}

	var expected *time.Time
	if req.ExpectedDeliveryDate != nil {
		t, err := time.Parse("2006-01-02", *req.ExpectedDeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_delivery_date", ErrInvalid)
		}
		expected = &t
	}

	po := &model.PurchaseOrder{
		SupplierID:           supplierID,
		OrderDate:            s.now(),
		ExpectedDeliveryDate: expected,
		Status:               model.POStatusPending,
		CreatedByID:          &createdBy,
		Notes:                req.Notes,
	}
	total := decimal.Zero
	for i, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, &LineFailure{Line: i, ProductID: line.ProductID, Reason: "invalid product id"}
		}
		if line.Quantity <= 0 {
			return nil, &LineFailure{Line: i, ProductID: line.ProductID, Reason: "quantity must be positive"}
		}
		if line.UnitCost.IsNegative() {
			return nil, &LineFailure{Line: i, ProductID: line.ProductID, Reason: "unit cost must not be negative"}
		}
		subtotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	po.TotalAmount = total

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.CreateTx(tx, po)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("po_id", po.ID.String()).Str("total", total.String()).Msg("purchase order created")
	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}

func (s *PurchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}

func (s *PurchaseService) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toPurchaseOrderResponse(&orders[i]))
	}
	return out, nil
}

// UpdateStatus moves an order between Pending, Ordered and Canceled.
// Received is only reachable through Receive, and is final.
func (s *PurchaseService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	po, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if po.Status == model.POStatusReceived {
		return fmt.Errorf("%w: order already received", ErrInvalid)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// Receive applies the order's quantities to stock and marks it
// Received. The call is idempotent: an already-received order reports
// "already_received" and stock is untouched. The status check runs
// under a row lock so concurrent receives cannot double-apply.
func (s *PurchaseService) Receive(ctx context.Context, id uuid.UUID) (*dto.ReceiveResponse, error) {
	resp := &dto.ReceiveResponse{ID: id.String()}
	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		po, err := s.orders.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return notFound(err)
		}
		if po.Status == model.POStatusReceived {
			resp.Status = "already_received"
			return nil
		}
		for _, item := range po.Items {
			if _, err := s.products.FindByIDForUpdateTx(tx, item.ProductID); err != nil {
				return err
			}
			if err := s.products.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.orders.UpdateStatusTx(tx, id, model.POStatusReceived); err != nil {
			return err
		}
		resp.Status = "received"
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resp.Status == "received" {
		s.log.Info().Str("po_id", id.String()).Msg("purchase order received, stock applied")
	}
	return resp, nil
}

func toPurchaseOrderResponse(po *model.PurchaseOrder) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:          po.ID.String(),
		SupplierID:  po.SupplierID.String(),
		OrderDate:   po.OrderDate.Format("2006-01-02"),
		TotalAmount: po.TotalAmount,
		Status:      po.Status,
		Notes:       po.Notes,
	}
	if po.Supplier != nil {
		resp.Supplier = po.Supplier.Name
	}
	if po.ExpectedDeliveryDate != nil {
		d := po.ExpectedDeliveryDate.Format("2006-01-02")
		resp.ExpectedDeliveryDate = &d
	}
	if po.CreatedBy != nil {
		resp.CreatedBy = po.CreatedBy.Name
	}
	resp.Items = make([]dto.PurchaseOrderLineResponse, 0, len(po.Items))
	for _, item := range po.Items {
		line := dto.PurchaseOrderLineResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Subtotal:  item.Subtotal,
		}
		if item.Product != nil {
			line.Product = item.Product.Name
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
