package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock lives directly on the record; the
// sale flow is the only path that refuses to drive it negative.
// Deactivation is a soft delete so historical sale lines keep their
// product reference.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	StockQuantity int             `gorm:"not null;default:0"`
	// ReorderLevel is the threshold at or below which the product is
	// flagged low-stock.
	ReorderLevel int     `gorm:"not null;default:10"`
	Barcode      *string `gorm:"uniqueIndex"`
	IsActive     bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// StockStatus mirrors the catalog page's traffic-light label.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity <= 0:
		return "out_of_stock"
	case p.StockQuantity <= p.ReorderLevel:
		return "low_stock"
	default:
		return "in_stock"
	}
}

// Category classifies products.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps GORM from pluralizing to "categorys".
func (Category) TableName() string { return "categories" }
