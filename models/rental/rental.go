package rental

import (
	"rental-booking/models/branch"
	"rental-booking/models/customer"
	"rental-booking/models/product"
	"time"

	"github.com/shopspring/decimal"
)

// RentalOrder is the aggregate root of the booking lifecycle. TotalPrice and
// DepositAmount are snapshotted at creation and never recomputed, even if
// the product's pricing changes later. StartDate/EndDate are inclusive day
// boundaries.
type RentalOrder struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RentalRef string `gorm:"type:varchar(32);not null;unique" json:"rental_ref"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	DepositAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit_amount"`

	Status Status `gorm:"type:varchar(30);not null;index" json:"status"`

	// Foreign key for customer relationship
	CustomerID uint              `gorm:"not null;index" json:"customer_id"`
	Customer   customer.Customer `gorm:"foreignKey:CustomerID" json:"customer"`

	// Foreign key for product relationship
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Product   product.Product `gorm:"foreignKey:ProductID" json:"product"`

	// Branch is denormalized from the product at creation time.
	BranchID uint          `gorm:"not null;index" json:"branch_id"`
	Branch   branch.Branch `gorm:"foreignKey:BranchID" json:"branch"`

	StatusHistory []StatusHistory `gorm:"foreignKey:RentalOrderID" json:"status_history,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the RentalOrder model
func (RentalOrder) TableName() string {
	return "rental_orders"
}
