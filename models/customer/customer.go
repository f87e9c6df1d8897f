package customer

import (
	"time"
)

// Customer is a LIFF mini-app user identified by their LINE user ID. There
// is at most one row per LINE identity; profile fields are refreshed with
// every new booking (last write wins).
type Customer struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	LineUserID  string  `gorm:"type:varchar(255);not null;unique" json:"line_user_id"`
	DisplayName *string `gorm:"type:varchar(255)" json:"display_name,omitempty"`
	PictureURL  *string `gorm:"type:varchar(2048)" json:"picture_url,omitempty"`
	FirstName   string  `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName    string  `gorm:"type:varchar(255);not null" json:"last_name"`
	PhoneNumber string  `gorm:"type:varchar(20);not null" json:"phone_number"`
	Address     *string `gorm:"type:text" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
