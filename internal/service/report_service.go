package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bizpos/internal/dto"
	"bizpos/internal/repository"
)

// AlertDispatcher enqueues an email job for asynchronous delivery.
type AlertDispatcher interface {
	EnqueueEmail(ctx context.Context, to []string, subject, body string) error
}

// ReportService aggregates sales, expenses and stock for the owner
// dashboard, and owns the low-stock alert side effect.
type ReportService struct {
	reports    repository.ReportRepository
	sales      repository.SaleRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	dispatcher AlertDispatcher
	business   string
	log        zerolog.Logger
	now        func() time.Time
}

func NewReportService(
	reports repository.ReportRepository,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	dispatcher AlertDispatcher,
	business string,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		reports:    reports,
		sales:      sales,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
		business:   business,
		log:        log,
		now:        time.Now,
	}
}

// SalesReport resolves the requested period and returns headline
// figures plus a per-day series.
func (s *ReportService) SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	rng, warning := ResolveDateRange(filter.Period, filter.Start, filter.End, s.now())

	summary, err := s.reports.SalesSummary(ctx, rng.Start, rng.End, filter.UserID)
	if err != nil {
		return nil, err
	}
	daily, err := s.reports.DailySales(ctx, rng.Start, rng.End, filter.UserID)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if summary.TransactionCount > 0 {
		average = summary.TotalRevenue.Div(decimal.NewFromInt(summary.TransactionCount)).Round(2)
	}
	resp := &dto.SalesReportResponse{
		StartDate:        rng.Start.Format("2006-01-02"),
		EndDate:          rng.End.Format("2006-01-02"),
		Warning:          warning,
		TotalRevenue:     summary.TotalRevenue,
		TransactionCount: summary.TransactionCount,
		AverageSale:      average,
		Daily:            make([]dto.DailyTotal, 0, len(daily)),
	}
	for _, d := range daily {
		resp.Daily = append(resp.Daily, dto.DailyTotal{Date: d.Day.Format("2006-01-02"), Total: d.Total})
	}
	return resp, nil
}

// ExpenseReport mirrors SalesReport for the cost side: total, split by
// category, and a month-bucketed series.
func (s *ReportService) ExpenseReport(ctx context.Context, filter dto.ReportFilter) (*dto.ExpenseReportResponse, error) {
	rng, warning := ResolveDateRange(filter.Period, filter.Start, filter.End, s.now())

	total, err := s.reports.ExpenseTotal(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reports.ExpensesByCategory(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	monthly, err := s.reports.ExpensesByMonth(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExpenseReportResponse{
		StartDate:  rng.Start.Format("2006-01-02"),
		EndDate:    rng.End.Format("2006-01-02"),
		Warning:    warning,
		Total:      total,
		ByCategory: make([]dto.CategoryTotal, 0, len(byCategory)),
		Monthly:    make([]dto.MonthlyTotal, 0, len(monthly)),
	}
	for _, row := range byCategory {
		resp.ByCategory = append(resp.ByCategory, dto.CategoryTotal{Category: row.Category, Total: row.Total})
	}
	for _, row := range monthly {
		resp.Monthly = append(resp.Monthly, dto.MonthlyTotal{Month: row.Month.Format("2006-01"), Total: row.Total})
	}
	return resp, nil
}

// PerformanceReport ranks products by units sold and by revenue.
func (s *ReportService) PerformanceReport(ctx context.Context, limit int) (*dto.PerformanceReportResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	byQty, err := s.reports.TopProductsByQuantity(ctx, limit)
	if err != nil {
		return nil, err
	}
	byRevenue, err := s.reports.TopProductsByRevenue(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.PerformanceReportResponse{
		ByQuantity: make([]dto.ProductPerformance, 0, len(byQty)),
		ByRevenue:  make([]dto.ProductPerformance, 0, len(byRevenue)),
	}
	for _, row := range byQty {
		resp.ByQuantity = append(resp.ByQuantity, performanceFromRow(row))
	}
	for _, row := range byRevenue {
		resp.ByRevenue = append(resp.ByRevenue, performanceFromRow(row))
	}
	return resp, nil
}

func performanceFromRow(row repository.ProductPerformanceRow) dto.ProductPerformance {
	return dto.ProductPerformance{
		ProductID:    row.ProductID,
		Product:      row.Name,
		QuantitySold: row.QuantitySold,
		Revenue:      row.Revenue,
	}
}

// ExportSalesCSV streams the sales of the period as CSV, one row per
// sale line. A sale with no lines still gets one placeholder row so it
// is visible in the export.
func (s *ReportService) ExportSalesCSV(ctx context.Context, period string, w io.Writer) error {
	rng := ResolveExportRange(period, s.now())
	sales, err := s.sales.ListWithItems(ctx, rng.Start, rng.End)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Sale ID", "Date", "Total Amount", "Processed By", "Customer", "Product", "Quantity", "Unit Price", "Subtotal"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range sales {
		sale := &sales[i]
		processedBy := ""
		if sale.User != nil {
			processedBy = sale.User.Name
		}
		customer := "Walk-in"
		if sale.Customer != nil {
			customer = sale.Customer.FullName()
		}
		base := []string{
			sale.ID.String(),
			sale.SaleDate.Format("2006-01-02 15:04:05"),
			sale.TotalAmount.StringFixed(2),
			processedBy,
			customer,
		}
		if len(sale.Items) == 0 {
			if err := cw.Write(append(base, "No items", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for _, item := range sale.Items {
			product := ""
			if item.Product != nil {
				product = item.Product.Name
			}
			row := append(append([]string{}, base...),
				product,
				strconv.Itoa(item.Quantity),
				item.UnitPrice.StringFixed(2),
				item.Subtotal.StringFixed(2),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// LowStockReport lists active products at or below their reorder level.
// When any exist, an alert email is queued for every active owner or
// stock manager with an address on file. The email is best effort: a
// queue failure is reported in the response, never as an error.
func (s *ReportService) LowStockReport(ctx context.Context) (*dto.LowStockReportResponse, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.LowStockReportResponse{
		Products: make([]dto.LowStockProduct, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.LowStockProduct{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			ReorderLevel:  p.ReorderLevel,
		})
	}
	if len(resp.Products) == 0 {
		resp.Alert = "no products below reorder level"
		return resp, nil
	}

	recipients, err := s.users.ListAlertRecipients(ctx)
	if err != nil || len(recipients) == 0 {
		resp.Alert = "no recipients with email on file"
		return resp, nil
	}

	subject := fmt.Sprintf("%s: %d product(s) low on stock", s.business, len(resp.Products))
	body := "The following products are at or below their reorder level:\n\n"
	for _, p := range resp.Products {
		body += fmt.Sprintf("- %s: %d in stock (reorder at %d)\n", p.Name, p.StockQuantity, p.ReorderLevel)
	}
	if err := s.dispatcher.EnqueueEmail(ctx, recipients, subject, body); err != nil {
		s.log.Error().Err(err).Msg("failed to enqueue low-stock alert")
		resp.Alert = "alert could not be queued"
		return resp, nil
	}
	resp.Alert = "queued"
	return resp, nil
}
