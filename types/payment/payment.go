package payment

import (
	"fmt"
	"time"
)

// PaymentCreateRequest is the multipart form payload for a slip upload; the
// slip image itself arrives as the "slip" file field.
type PaymentCreateRequest struct {
	RentalOrderID uint   `form:"rental_order_id"`
	Amount        string `form:"amount"`
	BankName      string `form:"bank_name"`
	TransferDate  string `form:"transfer_date"`
}

func (r PaymentCreateRequest) Validate() error {
	if r.RentalOrderID == 0 {
		return fmt.Errorf("rental_order_id is required")
	}
	if r.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if r.BankName == "" {
		return fmt.Errorf("bank_name is required")
	}
	if r.TransferDate == "" {
		return fmt.Errorf("transfer_date is required")
	}
	if _, err := time.Parse(time.RFC3339, r.TransferDate); err != nil {
		if _, err := time.Parse("2006-01-02", r.TransferDate); err != nil {
			return fmt.Errorf("transfer_date must be an ISO date or datetime")
		}
	}
	return nil
}
