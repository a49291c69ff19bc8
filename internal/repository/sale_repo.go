package repository

import (
	"context"
	"time"

	"bizpos/internal/dto"
	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total interface{}) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Sale, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Sale, error)
	// ListWithItems loads every sale in [start, end] with its lines, for
	// the CSV export. A zero start with a zero end means all time.
	ListWithItems(ctx context.Context, start, end time.Time) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total interface{}) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("total_amount", total).Error
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// SaleItems cascade at the DB level
	if err := tx.Where("sale_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Sale{}, id).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("User").Preload("Customer").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Date != "" {
		q = q.Where("DATE(sale_date) = ?", filter.Date)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Preload("User").Preload("Customer").
		Order("sale_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Customer").
		Where("user_id = ?", userID).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListWithItems(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("User").Preload("Customer")
	if !start.IsZero() {
		q = q.Where("sale_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("sale_date <= ?", end)
	}
	err := q.Order("sale_date ASC").Find(&sales).Error
	return sales, err
}
