package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Every user owns exactly one EmployeeProfile;
// both are created in the same transaction (no reactive hooks).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile *EmployeeProfile `gorm:"foreignKey:UserID"`
}

// EmployeeProfile extends a User with the role that drives every
// authorization decision.
type EmployeeProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Role             Role      `gorm:"type:varchar(20);not null;default:'cashier'"`
	PhoneNumber      *string
	IsActiveEmployee bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
