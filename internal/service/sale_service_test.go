package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpos/internal/dto"
	"bizpos/internal/model"
)

func testLogger() zerolog.Logger { return zerolog.Nop() }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	coffee := &model.Product{Name: "Coffee", Price: dec("3.50"), StockQuantity: 20, IsActive: true}
	bread := &model.Product{Name: "Bread", Price: dec("2.00"), StockQuantity: 15, IsActive: true}
	products := newStubProductRepo(coffee, bread)
	sales := newStubSaleRepo()
	customer := &model.Customer{FirstName: "Ana"}
	customers := newStubCustomerRepo(customer)

	svc := NewSaleService(sales, products, customers, testLogger())
	customerID := customer.ID.String()

	resp, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		CustomerID: &customerID,
		Items: []dto.SaleLineRequest{
			{ProductID: coffee.ID.String(), Quantity: 2},
			{ProductID: bread.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2×3.50 + 3×2.00
	assert.True(t, resp.TotalAmount.Equal(dec("13.00")), "total = %s", resp.TotalAmount)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 18, coffee.StockQuantity)
	assert.Equal(t, 12, bread.StockQuantity)

	// Line captured the price at time of sale.
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("3.50")))
	assert.True(t, resp.Items[0].Subtotal.Equal(dec("7.00")))

	// Customer stamped inside the same flow.
	_, stamped := customers.stamped[customer.ID]
	assert.True(t, stamped)
	require.NotNil(t, customer.LastPurchase)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	soap := &model.Product{Name: "Soap", Price: dec("1.25"), StockQuantity: 4, IsActive: true}
	products := newStubProductRepo(soap)
	svc := NewSaleService(newStubSaleRepo(), products, newStubCustomerRepo(), testLogger())

	_, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: soap.ID.String(), Quantity: 5}},
	})
	require.Error(t, err)

	var lf *LineFailure
	require.ErrorAs(t, err, &lf)
	assert.Equal(t, 0, lf.Line)
	assert.Equal(t, soap.ID.String(), lf.ProductID)
	assert.Contains(t, lf.Reason, "insufficient stock")

	// Stock untouched.
	assert.Equal(t, 4, soap.StockQuantity)
}

func TestRecordSaleRejectsInactiveProduct(t *testing.T) {
	retired := &model.Product{Name: "Retired", Price: dec("9.99"), StockQuantity: 10, IsActive: false}
	products := newStubProductRepo(retired)
	svc := NewSaleService(newStubSaleRepo(), products, newStubCustomerRepo(), testLogger())

	_, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: retired.ID.String(), Quantity: 1}},
	})
	var lf *LineFailure
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, lf.Reason, "inactive")
	assert.Equal(t, 10, retired.StockQuantity)
}

func TestRecordSaleRejectsUnknownProduct(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubProductRepo(), newStubCustomerRepo(), testLogger())

	_, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	var lf *LineFailure
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, lf.Reason, "not found")
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	p := &model.Product{Name: "Milk", Price: dec("1.10"), StockQuantity: 5, IsActive: true}
	products := newStubProductRepo(p)
	svc := NewSaleService(newStubSaleRepo(), products, newStubCustomerRepo(), testLogger())

	for _, qty := range []int{0, -2} {
		_, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
			Items: []dto.SaleLineRequest{{ProductID: p.ID.String(), Quantity: qty}},
		})
		var lf *LineFailure
		require.ErrorAs(t, err, &lf, "quantity %d", qty)
	}
	assert.Equal(t, 5, p.StockQuantity)
}

// Sell 3 of 10 at 1000, then try to sell 8: the first sale totals 3000
// and leaves 7 in stock; the second is rejected and stock stays at 7.
func TestSaleThenOverdraftScenario(t *testing.T) {
	tv := &model.Product{Name: "TV", Price: dec("1000"), StockQuantity: 10, IsActive: true}
	products := newStubProductRepo(tv)
	svc := NewSaleService(newStubSaleRepo(), products, newStubCustomerRepo(), testLogger())
	cashier := uuid.New()

	first, err := svc.Record(context.Background(), cashier, dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: tv.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(dec("3000")))
	assert.Equal(t, 7, tv.StockQuantity)

	_, err = svc.Record(context.Background(), cashier, dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: tv.ID.String(), Quantity: 8}},
	})
	var lf *LineFailure
	require.ErrorAs(t, err, &lf)
	assert.Equal(t, 7, tv.StockQuantity)
}

func TestVoidSaleRestoresStock(t *testing.T) {
	pen := &model.Product{Name: "Pen", Price: dec("0.80"), StockQuantity: 30, IsActive: true}
	products := newStubProductRepo(pen)
	sales := newStubSaleRepo()
	svc := NewSaleService(sales, products, newStubCustomerRepo(), testLogger())

	resp, err := svc.Record(context.Background(), uuid.New(), dto.RecordSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: pen.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 26, pen.StockQuantity)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Void(context.Background(), saleID))
	assert.Equal(t, 30, pen.StockQuantity)
	assert.Contains(t, sales.deleted, saleID)

	// Voiding again: the sale is gone.
	assert.ErrorIs(t, svc.Void(context.Background(), saleID), ErrNotFound)
}
