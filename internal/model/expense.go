package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory groups expenses. Deletion is blocked while any
// expense still references it (RESTRICT at the DB level).
type ExpenseCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps GORM from pluralizing to "expense_categorys".
func (ExpenseCategory) TableName() string { return "expense_categories" }

// Expense is a single outgoing cost. Date is a calendar date, not a
// timestamp — reports bucket on it directly.
type Expense struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date         time.Time       `gorm:"type:date;index;not null"`
	Description  *string
	RecordedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category   *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	RecordedBy *User            `gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL"`
}
