package dto

import "github.com/shopspring/decimal"

type ExpenseCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

type ExpenseCategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CreateExpenseRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Date        string          `json:"date"        validate:"omitempty,datetime=2006-01-02"` // default: today
	Description *string         `json:"description"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
// A malformed date bound is skipped with a warning rather than failing
// the request.
type ExpenseFilter struct {
	CategoryID string `form:"category_id"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description"`
	RecordedBy  string          `json:"recorded_by,omitempty"`
}

type ExpenseListResponse struct {
	Data     []ExpenseResponse `json:"data"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Warnings []string          `json:"warnings,omitempty"`
}
