package dto

import "github.com/shopspring/decimal"

// ─── Suppliers ───────────────────────────────────────────────────────────────

type SupplierRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	ContactPerson *string `json:"contact_person"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

type SupplierResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

// ─── Purchase orders ─────────────────────────────────────────────────────────

type PurchaseOrderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"  validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID           string                     `json:"supplier_id" validate:"required,uuid"`
	ExpectedDeliveryDate *string                    `json:"expected_delivery_date"` // YYYY-MM-DD
	Notes                *string                    `json:"notes"`
	Items                []PurchaseOrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseOrderStatusRequest moves an order between the
// non-receiving states; receiving has its own endpoint.
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Ordered Canceled"`
}

type PurchaseOrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	SupplierID           string                      `json:"supplier_id"`
	Supplier             string                      `json:"supplier"`
	OrderDate            string                      `json:"order_date"`
	ExpectedDeliveryDate *string                     `json:"expected_delivery_date"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Status               string                      `json:"status"`
	CreatedBy            string                      `json:"created_by,omitempty"`
	Notes                *string                     `json:"notes"`
	Items                []PurchaseOrderLineResponse `json:"items"`
}

// ReceiveResponse reports the outcome of a receive call. Status is
// "received" on the first call and "already_received" on any repeat —
// the repeat never touches stock.
type ReceiveResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ─── Stock adjustments ───────────────────────────────────────────────────────

type CreateAdjustmentRequest struct {
	ProductID      string  `json:"product_id"      validate:"required,uuid"`
	QuantityChange int     `json:"quantity_change" validate:"required"`
	AdjustmentType string  `json:"adjustment_type" validate:"required"`
	Notes          *string `json:"notes"`
}

type AdjustmentResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	Product        string  `json:"product"`
	QuantityChange int     `json:"quantity_change"`
	AdjustmentType string  `json:"adjustment_type"`
	Notes          *string `json:"notes"`
	NewStock       int     `json:"new_stock"`
	CreatedAt      string  `json:"created_at"`
}
