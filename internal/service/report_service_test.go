package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpos/internal/model"
)

func TestExportSalesCSVOneRowPerLine(t *testing.T) {
	cashier := &model.User{Name: "Bea"}
	mug := &model.Product{ID: uuid.New(), Name: "Mug"}
	plate := &model.Product{ID: uuid.New(), Name: "Plate"}

	sales := newStubSaleRepo()
	userID := uuid.New()
	sales.sales[uuid.New()] = &model.Sale{
		ID:          uuid.New(),
		UserID:      &userID,
		User:        cashier,
		TotalAmount: dec("19.00"),
		SaleDate:    time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC),
		Items: []model.SaleItem{
			{ProductID: mug.ID, Product: mug, Quantity: 2, UnitPrice: dec("5.00"), Subtotal: dec("10.00")},
			{ProductID: plate.ID, Product: plate, Quantity: 3, UnitPrice: dec("3.00"), Subtotal: dec("9.00")},
		},
	}
	// A sale with no lines still shows up, as a placeholder row.
	sales.sales[uuid.New()] = &model.Sale{
		ID:          uuid.New(),
		TotalAmount: dec("0.00"),
		SaleDate:    time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
	}

	svc := NewReportService(nil, sales, newStubProductRepo(), newStubUserRepo(), &stubDispatcher{}, "Test Shop", testLogger())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSalesCSV(context.Background(), "all", &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header + two item rows + one placeholder.
	require.Len(t, records, 4)
	assert.Equal(t, "Sale ID", records[0][0])

	var itemRows, placeholderRows int
	for _, rec := range records[1:] {
		require.Len(t, rec, 9)
		if rec[5] == "No items" {
			placeholderRows++
			assert.Equal(t, "Walk-in", rec[4])
		} else {
			itemRows++
		}
	}
	assert.Equal(t, 2, itemRows)
	assert.Equal(t, 1, placeholderRows)
}

func TestLowStockReportQueuesAlert(t *testing.T) {
	low := &model.Product{Name: "Napkins", StockQuantity: 2, ReorderLevel: 10, IsActive: true}
	fine := &model.Product{Name: "Cups", StockQuantity: 50, ReorderLevel: 10, IsActive: true}
	products := newStubProductRepo(low, fine)
	users := newStubUserRepo()
	users.recipients = []string{"owner@shop.test", "stock@shop.test"}
	dispatcher := &stubDispatcher{}

	svc := NewReportService(nil, newStubSaleRepo(), products, users, dispatcher, "Test Shop", testLogger())

	resp, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Napkins", resp.Products[0].Name)
	assert.Equal(t, "queued", resp.Alert)

	require.Len(t, dispatcher.jobs, 1)
	job := dispatcher.jobs[0]
	assert.Equal(t, users.recipients, job.To)
	assert.Contains(t, job.Subject, "Test Shop")
	assert.Contains(t, job.Body, "Napkins")
	assert.Contains(t, job.Body, "2 in stock")
}

func TestLowStockReportNoProducts(t *testing.T) {
	healthy := &model.Product{Name: "Cups", StockQuantity: 50, ReorderLevel: 10, IsActive: true}
	products := newStubProductRepo(healthy)
	dispatcher := &stubDispatcher{}

	svc := NewReportService(nil, newStubSaleRepo(), products, newStubUserRepo(), dispatcher, "Test Shop", testLogger())

	resp, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.Empty(t, dispatcher.jobs)
}

func TestLowStockReportNoRecipients(t *testing.T) {
	low := &model.Product{Name: "Napkins", StockQuantity: 0, ReorderLevel: 5, IsActive: true}
	products := newStubProductRepo(low)
	dispatcher := &stubDispatcher{}

	svc := NewReportService(nil, newStubSaleRepo(), products, newStubUserRepo(), dispatcher, "Test Shop", testLogger())

	resp, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "no recipients with email on file", resp.Alert)
	assert.Empty(t, dispatcher.jobs)
}

// An enqueue failure is reported in the body, never as an error.
func TestLowStockReportEnqueueFailure(t *testing.T) {
	low := &model.Product{Name: "Napkins", StockQuantity: 0, ReorderLevel: 5, IsActive: true}
	products := newStubProductRepo(low)
	users := newStubUserRepo()
	users.recipients = []string{"owner@shop.test"}
	dispatcher := &stubDispatcher{fail: true}

	svc := NewReportService(nil, newStubSaleRepo(), products, users, dispatcher, "Test Shop", testLogger())

	resp, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alert could not be queued", resp.Alert)
}
