package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the transaction header. TotalAmount always equals the sum of
// its item subtotals; both are written inside the same transaction that
// decrements stock.
type Sale struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SaleDate    time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Customer *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is a sale line. UnitPrice captures the product's price at
// the time of sale, so later catalog edits never rewrite history.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product"`
	Quantity  int       `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// Customer is an optional contact attached to sales. LastPurchase is
// stamped inside the sale transaction.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName    string    `gorm:"not null"`
	LastName     *string
	Email        *string `gorm:"uniqueIndex"`
	PhoneNumber  *string
	Address      *string
	Notes        *string
	LastPurchase *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last names, skipping a missing last name.
func (c *Customer) FullName() string {
	if c.LastName == nil || *c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + *c.LastName
}
