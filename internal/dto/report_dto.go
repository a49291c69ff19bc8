package dto

import "github.com/shopspring/decimal"

// ReportFilter is bound from the query string of every report endpoint.
// Period is a named range (today, last_7_days, last_30_days, this_month,
// last_month, this_year, all_time, custom); custom reads Start/End.
type ReportFilter struct {
	Period string `form:"period"`
	Start  string `form:"start"`   // YYYY-MM-DD, custom only
	End    string `form:"end"`     // YYYY-MM-DD, custom only
	UserID string `form:"user_id"` // optional employee filter
}

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SalesReportResponse is the owner dashboard payload: headline figures
// plus a day-bucketed series for charting.
type SalesReportResponse struct {
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Warning          string          `json:"warning,omitempty"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TransactionCount int64           `json:"transaction_count"`
	AverageSale      decimal.Decimal `json:"average_sale"`
	Daily            []DailyTotal    `json:"daily"`
}

type ExpenseReportResponse struct {
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Warning    string          `json:"warning,omitempty"`
	Total      decimal.Decimal `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
	Monthly    []MonthlyTotal  `json:"monthly"`
}

// ProductPerformance ranks a product by units sold and revenue.
type ProductPerformance struct {
	ProductID    string          `json:"product_id"`
	Product      string          `json:"product"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type PerformanceReportResponse struct {
	ByQuantity []ProductPerformance `json:"by_quantity"`
	ByRevenue  []ProductPerformance `json:"by_revenue"`
}

// LowStockProduct is one row of the low-stock report and of the alert
// email body.
type LowStockProduct struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	ReorderLevel  int    `json:"reorder_level"`
}

type LowStockReportResponse struct {
	Products []LowStockProduct `json:"products"`
	// Alert describes what happened to the email side effect:
	// "queued" when a job was dispatched, otherwise a human-readable
	// reason why nothing was sent.
	Alert string `json:"alert"`
}
