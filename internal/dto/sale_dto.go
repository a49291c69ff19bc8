package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type RecordSaleRequest struct {
	CustomerID *string           `json:"customer_id" validate:"omitempty,uuid"`
	Items      []SaleLineRequest `json:"items"       validate:"required,min=1,dive"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date   string `form:"date"`    // YYYY-MM-DD; empty = all
	UserID string `form:"user_id"` // filter by processing employee
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID          string             `json:"id"`
	UserID      *string            `json:"user_id"`
	ProcessedBy string             `json:"processed_by"`
	CustomerID  *string            `json:"customer_id"`
	Customer    string             `json:"customer,omitempty"`
	Items       []SaleLineResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	SaleDate    string             `json:"sale_date"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Customers ───────────────────────────────────────────────────────────────

type CustomerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName    *string `json:"last_name"  validate:"omitempty,max=100"`
	Email       *string `json:"email"      validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

type CustomerResponse struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name"`
	FullName     string  `json:"full_name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
	LastPurchase *string `json:"last_purchase"`
}

// CustomerDetailResponse adds the purchase history to the contact card.
type CustomerDetailResponse struct {
	CustomerResponse
	Sales []SaleResponse `json:"sales"`
}
