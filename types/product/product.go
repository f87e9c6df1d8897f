package product

import (
	"fmt"
)

// ProductRequest covers create and update; prices arrive as decimal
// strings so no float rounding sneaks in before storage.
type ProductRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	PricePerDay string `form:"price_per_day" json:"price_per_day"`
	Deposit     string `form:"deposit" json:"deposit"`
	Status      string `form:"status" json:"status"`
	BranchID    uint   `form:"branch_id" json:"branch_id"`
}

func (r ProductRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.PricePerDay == "" {
		return fmt.Errorf("price_per_day is required")
	}
	if r.Deposit == "" {
		return fmt.Errorf("deposit is required")
	}
	if r.BranchID == 0 {
		return fmt.Errorf("branch_id is required")
	}
	return nil
}
