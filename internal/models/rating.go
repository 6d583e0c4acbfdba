// internal/models/rating.go
package models

import "time"

// Rating references products by prod_name (the legacy product_id column).
// There is deliberately no uniqueness constraint: a customer may review the
// same product on the same order more than once.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	ProductID string    `json:"product_id" gorm:"size:255;not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }
