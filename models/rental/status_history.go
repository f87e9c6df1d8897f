package rental

import (
	"time"
)

// StatusHistory is one row of the append-only audit ledger. Exactly one row
// is written, in the same transaction, for every status change. Rows are
// never updated or deleted.
type StatusHistory struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for rental order relationship
	RentalOrderID uint `gorm:"not null;index" json:"rental_order_id"`

	Status    Status    `gorm:"type:varchar(30);not null" json:"status"`
	Note      string    `gorm:"type:text" json:"note"`
	ChangedBy string    `gorm:"type:varchar(255);not null" json:"changed_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the StatusHistory model
func (StatusHistory) TableName() string {
	return "rental_status_histories"
}
