package repository

import (
	"context"

	"bizpos/internal/dto"
	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row lock so concurrent sales of the
	// same product serialize on the stock check.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("barcode = ? AND is_active = true AND stock_quantity > 0", barcode).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// Active filter: "false" = inactive, "all" = everything, default active only
	switch filter.Active {
	case "false":
		q = q.Where("is_active = false")
	case "all":
		// no filter
	default:
		q = q.Where("is_active = true")
	}

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LowStock {
		q = q.Where("stock_quantity <= reorder_level")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity <= reorder_level AND is_active = true").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *productRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
