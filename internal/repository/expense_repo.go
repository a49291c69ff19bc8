package repository

import (
	"context"
	"time"

	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	CreateCategory(ctx context.Context, c *model.ExpenseCategory) error
	ListCategories(ctx context.Context) ([]model.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, categoryID string, start, end *time.Time, page, limit int) ([]model.Expense, int64, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) CreateCategory(ctx context.Context, c *model.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *expenseRepo) ListCategories(ctx context.Context) ([]model.ExpenseCategory, error) {
	var categories []model.ExpenseCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *expenseRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	// RESTRICT on expenses.category_id makes this fail while referenced
	return r.db.WithContext(ctx).Delete(&model.ExpenseCategory{}, id).Error
}

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context, categoryID string, start, end *time.Time, page, limit int) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Expense{})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Category").Preload("RecordedBy").
		Order("date DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&expenses).Error
	return expenses, total, err
}
