package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order lifecycle. Receiving is the only transition with a
// stock side effect and is one-way: a Received order stays Received.
const (
	POStatusPending  = "Pending"
	POStatusOrdered  = "Ordered"
	POStatusReceived = "Received"
	POStatusCanceled = "Canceled"
)

// Supplier is a purchasing counterparty.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	ContactPerson *string
	PhoneNumber   *string
	Email         *string
	Address       *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseOrder is the restock document. TotalAmount equals the sum of
// its item subtotals.
type PurchaseOrder struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID           uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDate            time.Time `gorm:"not null"`
	ExpectedDeliveryDate *time.Time
	TotalAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status               string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedByID          *uuid.UUID      `gorm:"type:uuid"`
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Supplier  *Supplier           `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	CreatedBy *User               `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Items     []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_po_product"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_po_product"`
	Quantity        int       `gorm:"not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// StockAdjustment is a manual ledger entry. Applying it adds
// QuantityChange (signed) to the product's stock; no floor is enforced
// here, unlike the sale flow.
type StockAdjustment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	QuantityChange int       `gorm:"not null"`
	AdjustmentType string    `gorm:"type:varchar(50);not null;default:'Other'"`
	Notes          *string
	AdjustedByID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time

	Product    *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	AdjustedBy *User    `gorm:"foreignKey:AdjustedByID;constraint:OnDelete:SET NULL"`
}

// Adjustment reason codes.
const (
	AdjustmentAdd           = "Add"
	AdjustmentRemove        = "Remove"
	AdjustmentReturn        = "Return"
	AdjustmentPhysicalCount = "Physical Count"
	AdjustmentOther         = "Other"
)

// ValidAdjustmentType reports whether t is a known reason code.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentAdd, AdjustmentRemove, AdjustmentReturn, AdjustmentPhysicalCount, AdjustmentOther:
		return true
	}
	return false
}
