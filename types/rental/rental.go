package rental

import (
	"fmt"
	"time"
)

// RentalCreateRequest is the LIFF booking payload. Dates are ISO day
// strings (YYYY-MM-DD); customer fields come from the LINE profile plus
// the booking form.
type RentalCreateRequest struct {
	ProductID uint   `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	LineUserID  string `json:"line_user_id"`
	DisplayName string `json:"display_name"`
	PictureURL  string `json:"picture_url"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (r RentalCreateRequest) Validate() error {
	if r.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}
	if r.StartDate == "" {
		return fmt.Errorf("start_date is required")
	}
	if r.EndDate == "" {
		return fmt.Errorf("end_date is required")
	}
	if r.LineUserID == "" {
		return fmt.Errorf("line_user_id is required")
	}
	if r.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if r.PhoneNumber == "" {
		return fmt.Errorf("phone_number is required")
	}
	if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", r.EndDate); err != nil {
		return fmt.Errorf("end_date must be YYYY-MM-DD")
	}
	return nil
}

// UpdateStatusRequest is the admin status-change payload. The actor comes
// from the authenticated context, not the body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (r UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// AvailabilityQuery is the date-range availability check input.
type AvailabilityQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}
