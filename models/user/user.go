package user

import (
	"rental-booking/models/branch"
	"time"
)

// User is an admin-console account. Customers are a separate model keyed on
// their LINE identity; users authenticate with email and password.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Role     string `gorm:"type:varchar(30);not null" json:"role"`
	IsActive bool   `gorm:"type:bool;default:true" json:"is_active"`

	// Optional branch scope for branch-level staff.
	BranchID *uint          `gorm:"index" json:"branch_id,omitempty"`
	Branch   *branch.Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
