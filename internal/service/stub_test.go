package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bizpos/internal/dto"
	"bizpos/internal/model"
)

// In-memory stand-ins for the repositories. DB() returns nil so runTx
// executes the body directly, without a database.

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.IsActive && p.StockQuantity > 0 {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive && p.StockQuantity <= p.ReorderLevel {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = true
	}
	return nil
}

type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	deleted []uuid.UUID
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	s.ID = uuid.New()
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) UpdateTotalTx(_ *gorm.DB, id uuid.UUID, total interface{}) error {
	if s, ok := r.sales[id]; ok {
		s.TotalAmount = total.(decimal.Decimal)
	}
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListWithItems(_ context.Context, _, _ time.Time) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	stamped   map[uuid.UUID]time.Time
}

func newStubCustomerRepo(customers ...*model.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{
		customers: make(map[uuid.UUID]*model.Customer),
		stamped:   make(map[uuid.UUID]time.Time),
	}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	c.ID = uuid.New()
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) { return nil, nil }

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) StampLastPurchaseTx(_ *gorm.DB, id uuid.UUID, t time.Time) error {
	r.stamped[id] = t
	if c, ok := r.customers[id]; ok {
		c.LastPurchase = &t
	}
	return nil
}

type stubPurchaseRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newStubPurchaseRepo(orders ...*model.PurchaseOrder) *stubPurchaseRepo {
	r := &stubPurchaseRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
	for _, po := range orders {
		if po.ID == uuid.Nil {
			po.ID = uuid.New()
		}
		r.orders[po.ID] = po
	}
	return r
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, po *model.PurchaseOrder) error {
	po.ID = uuid.New()
	r.orders[po.ID] = po
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return po, nil
}

func (r *stubPurchaseRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return po, nil
}

func (r *stubPurchaseRepo) List(_ context.Context) ([]model.PurchaseOrder, error) { return nil, nil }

func (r *stubPurchaseRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if po, ok := r.orders[id]; ok {
		po.Status = status
	}
	return nil
}

func (r *stubPurchaseRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	if po, ok := r.orders[id]; ok {
		po.Status = status
	}
	return nil
}

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo(suppliers ...*model.Supplier) *stubSupplierRepo {
	r := &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
	for _, s := range suppliers {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	s.ID = uuid.New()
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) { return nil, nil }

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error { return nil }

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

type stubAdjustmentRepo struct {
	adjustments []*model.StockAdjustment
}

func (r *stubAdjustmentRepo) DB() *gorm.DB { return nil }

func (r *stubAdjustmentRepo) CreateTx(_ *gorm.DB, a *model.StockAdjustment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.adjustments = append(r.adjustments, a)
	return nil
}

func (r *stubAdjustmentRepo) List(_ context.Context) ([]model.StockAdjustment, error) {
	out := make([]model.StockAdjustment, 0, len(r.adjustments))
	for _, a := range r.adjustments {
		out = append(out, *a)
	}
	return out, nil
}

type stubUserRepo struct {
	users      map[uuid.UUID]*model.User
	recipients []string
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) DB() *gorm.DB { return nil }

func (r *stubUserRepo) CreateWithProfileTx(_ *gorm.DB, u *model.User, p *model.EmployeeProfile) error {
	u.ID = uuid.New()
	p.ID = uuid.New()
	p.UserID = u.ID
	u.Profile = p
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.IsActive || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, _ *model.EmployeeProfile) error { return nil }

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = true
	}
	return nil
}

func (r *stubUserRepo) ListAlertRecipients(_ context.Context) ([]string, error) {
	return r.recipients, nil
}

type stubDispatcher struct {
	jobs []struct {
		To      []string
		Subject string
		Body    string
	}
	fail bool
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, to []string, subject, body string) error {
	if d.fail {
		return context.DeadlineExceeded
	}
	d.jobs = append(d.jobs, struct {
		To      []string
		Subject string
		Body    string
	}{to, subject, body})
	return nil
}
