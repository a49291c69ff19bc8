package repository

import (
	"context"

	"bizpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// CreateWithProfileTx persists the account and its employee profile
	// in the caller's transaction — the two never exist apart.
	CreateWithProfileTx(tx *gorm.DB, u *model.User, p *model.EmployeeProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, includeInactive bool) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	UpdateProfile(ctx context.Context, p *model.EmployeeProfile) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// ListAlertRecipients returns the emails of active employees whose
	// role can act on a low-stock alert (owner / stock manager).
	ListAlertRecipients(ctx context.Context) ([]string, error)
	DB() *gorm.DB
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) DB() *gorm.DB { return r.db }

func (r *userRepo) CreateWithProfileTx(tx *gorm.DB, u *model.User, p *model.EmployeeProfile) error {
	if err := tx.Create(u).Error; err != nil {
		return err
	}
	p.UserID = u.ID
	return tx.Create(p).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Profile").First(&u, id).Error
	return &u, err
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context, includeInactive bool) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Preload("Profile").Order("username ASC")
	if !includeInactive {
		q = q.Where("is_active = true")
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) UpdateProfile(ctx context.Context, p *model.EmployeeProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *userRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *userRepo) ListAlertRecipients(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&model.EmployeeProfile{}).
		Joins("JOIN users ON users.id = employee_profiles.user_id").
		Where("employee_profiles.role IN ? AND employee_profiles.is_active_employee = true", []model.Role{model.RoleOwner, model.RoleStockManager}).
		Where("users.email IS NOT NULL AND users.email <> ''").
		Pluck("users.email", &emails).Error
	return emails, err
}
