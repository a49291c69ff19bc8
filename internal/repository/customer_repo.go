package repository

import (
	"context"
	"time"

	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	// StampLastPurchaseTx is called inside the sale transaction.
	StampLastPurchaseTx(tx *gorm.DB, id uuid.UUID, t time.Time) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("first_name ASC, last_name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) StampLastPurchaseTx(tx *gorm.DB, id uuid.UUID, t time.Time) error {
	return tx.Model(&model.Customer{}).Where("id = ?", id).Update("last_purchase", t).Error
}
