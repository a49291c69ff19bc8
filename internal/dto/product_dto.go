package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=200"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"          validate:"required"`
	CategoryID    *string         `json:"category_id"    validate:"omitempty,uuid"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	ReorderLevel  int             `json:"reorder_level"  validate:"min=0"`
	Barcode       *string         `json:"barcode"        validate:"omitempty,min=4,max=100"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	CategoryID   *string          `json:"category_id"   validate:"omitempty,uuid"`
	ReorderLevel *int             `json:"reorder_level" validate:"omitempty,min=0"`
	Barcode      *string          `json:"barcode"       validate:"omitempty,min=4,max=100"`
}

// AddStockRequest is the quick restock shortcut; it records an "Add"
// adjustment under the hood.
type AddStockRequest struct {
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Notes    *string `json:"notes"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active only
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    *string         `json:"category_id"`
	CategoryName  *string         `json:"category_name"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
	StockStatus   string          `json:"stock_status"`
	Barcode       *string         `json:"barcode"`
	IsActive      bool            `json:"is_active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// BarcodeLookupResponse is returned by the POS barcode scan endpoint for
// an active, in-stock product.
type BarcodeLookupResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       string          `json:"barcode"`
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
