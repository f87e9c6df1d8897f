package product

import (
	"rental-booking/models/branch"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the admin-managed availability flag. It is not derived from
// bookings: a product can be AVAILABLE while carrying overlapping orders.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
	StatusMaintenance Status = "MAINTENANCE"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusMaintenance:
		return true
	default:
		return false
	}
}

// Product represents a rentable item owned by a branch.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	PricePerDay decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_day"`
	Deposit     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`

	// Foreign key for branch relationship
	BranchID uint          `gorm:"not null;index" json:"branch_id"`
	Branch   branch.Branch `gorm:"foreignKey:BranchID" json:"branch"`

	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
