package repository

import (
	"context"

	"bizpos/internal/model"

	"gorm.io/gorm"
)

type AdjustmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.StockAdjustment) error
	List(ctx context.Context) ([]model.StockAdjustment, error)
	DB() *gorm.DB
}

type adjustmentRepo struct{ db *gorm.DB }

func NewAdjustmentRepository(db *gorm.DB) AdjustmentRepository { return &adjustmentRepo{db: db} }

func (r *adjustmentRepo) DB() *gorm.DB { return r.db }

func (r *adjustmentRepo) CreateTx(tx *gorm.DB, a *model.StockAdjustment) error {
	return tx.Create(a).Error
}

func (r *adjustmentRepo) List(ctx context.Context) ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("AdjustedBy").
		Order("created_at DESC").
		Find(&adjustments).Error
	return adjustments, err
}
