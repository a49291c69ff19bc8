package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregation rows scanned from raw SQL. All summing and grouping is
// delegated to Postgres; Go only resolves the date range.

type SalesSummaryRow struct {
	TotalRevenue     decimal.Decimal
	TransactionCount int64
}

type DailyTotalRow struct {
	Day   time.Time
	Total decimal.Decimal
}

type MonthlyTotalRow struct {
	Month time.Time
	Total decimal.Decimal
}

type CategoryTotalRow struct {
	Category string
	Total    decimal.Decimal
}

type ProductPerformanceRow struct {
	ProductID    string
	Name         string
	QuantitySold int64
	Revenue      decimal.Decimal
}

type ReportRepository interface {
	SalesSummary(ctx context.Context, start, end time.Time, userID string) (*SalesSummaryRow, error)
	DailySales(ctx context.Context, start, end time.Time, userID string) ([]DailyTotalRow, error)
	ExpenseTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotalRow, error)
	ExpensesByMonth(ctx context.Context, start, end time.Time) ([]MonthlyTotalRow, error)
	TopProductsByQuantity(ctx context.Context, limit int) ([]ProductPerformanceRow, error)
	TopProductsByRevenue(ctx context.Context, limit int) ([]ProductPerformanceRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// salesWindow appends the shared date/user predicates.
func salesWindow(q *gorm.DB, start, end time.Time, userID string) *gorm.DB {
	q = q.Where("sale_date >= ? AND sale_date < ?", start, end.AddDate(0, 0, 1))
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	return q
}

func (r *reportRepo) SalesSummary(ctx context.Context, start, end time.Time, userID string) (*SalesSummaryRow, error) {
	var row SalesSummaryRow
	q := r.db.WithContext(ctx).Table("sales").
		Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS transaction_count")
	err := salesWindow(q, start, end, userID).Scan(&row).Error
	return &row, err
}

func (r *reportRepo) DailySales(ctx context.Context, start, end time.Time, userID string) ([]DailyTotalRow, error) {
	var rows []DailyTotalRow
	q := r.db.WithContext(ctx).Table("sales").
		Select("DATE(sale_date) AS day, COALESCE(SUM(total_amount), 0) AS total")
	err := salesWindow(q, start, end, userID).
		Group("DATE(sale_date)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ExpenseTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("date >= ? AND date <= ?", start, end).
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotalRow, error) {
	var rows []CategoryTotalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT ec.name AS category, COALESCE(SUM(e.amount), 0) AS total
		FROM expenses e
		JOIN expense_categories ec ON ec.id = e.category_id
		WHERE e.date >= ? AND e.date <= ?
		GROUP BY ec.name
		ORDER BY total DESC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ExpensesByMonth(ctx context.Context, start, end time.Time) ([]MonthlyTotalRow, error) {
	var rows []MonthlyTotalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE_TRUNC('month', date) AS month, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE date >= ? AND date <= ?
		GROUP BY DATE_TRUNC('month', date)
		ORDER BY month ASC`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TopProductsByQuantity(ctx context.Context, limit int) ([]ProductPerformanceRow, error) {
	var rows []ProductPerformanceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name,
		       COALESCE(SUM(si.quantity), 0) AS quantity_sold,
		       COALESCE(SUM(si.quantity * si.unit_price), 0) AS revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY p.id, p.name
		HAVING SUM(si.quantity) > 0
		ORDER BY quantity_sold DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TopProductsByRevenue(ctx context.Context, limit int) ([]ProductPerformanceRow, error) {
	var rows []ProductPerformanceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name,
		       COALESCE(SUM(si.quantity), 0) AS quantity_sold,
		       COALESCE(SUM(si.quantity * si.unit_price), 0) AS revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY p.id, p.name
		HAVING SUM(si.quantity * si.unit_price) > 0
		ORDER BY revenue DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}
