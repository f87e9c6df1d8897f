package product

import (
	"time"
)

// ProductImage is an uploaded photo of a product. The first uploaded image
// is flagged as the main one shown in listings.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"type:varchar(2048);not null" json:"url"`
	IsMain    bool      `gorm:"type:bool;default:false" json:"is_main"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}
