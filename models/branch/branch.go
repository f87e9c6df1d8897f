package branch

import (
	"time"
)

// Branch represents a rental shop location. Products belong to a branch and
// rental orders denormalize the branch at creation time.
type Branch struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Address  *string `gorm:"type:text" json:"address,omitempty"`
	Phone    *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive bool    `gorm:"type:bool;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
