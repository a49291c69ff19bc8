package repository

import (
	"context"

	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	// FindByIDForUpdateTx locks the order row so two concurrent receive
	// calls cannot both observe a non-Received status.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }

func (r *purchaseOrderRepo) CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.Create(po).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Supplier").Preload("CreatedBy").
		First(&po, id).Error
	return &po, err
}

func (r *purchaseOrderRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := tx.Raw("SELECT * FROM purchase_orders WHERE id = ? FOR UPDATE", id).Scan(&po).Error; err != nil {
		return nil, err
	}
	if po.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := tx.Model(&po).Association("Items").Find(&po.Items); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("CreatedBy").
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *purchaseOrderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).Update("status", status).Error
}
