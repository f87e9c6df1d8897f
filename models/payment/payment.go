package payment

import (
	"rental-booking/models/rental"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the customer's bank-transfer record for an order, created while
// the order is PENDING_PAYMENT. Creating it is what moves the order to
// WAITING_CONFIRMATION.
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for rental order relationship (one payment per order)
	RentalOrderID uint               `gorm:"not null;uniqueIndex" json:"rental_order_id"`
	RentalOrder   rental.RentalOrder `gorm:"foreignKey:RentalOrderID" json:"rental_order,omitempty"`

	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	BankName     string          `gorm:"type:varchar(100);not null" json:"bank_name"`
	TransferDate time.Time       `gorm:"not null" json:"transfer_date"`
	SlipURL      string          `gorm:"type:varchar(2048);not null" json:"slip_url"`

	// Filled asynchronously by the Gemini slip parser; ParseStatus is one of
	// pending / verified / mismatch / failed.
	ParsedBankName *string          `gorm:"type:varchar(100)" json:"parsed_bank_name,omitempty"`
	ParsedAmount   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"parsed_amount,omitempty"`
	ParseStatus    string           `gorm:"type:varchar(20);default:'pending'" json:"parse_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
