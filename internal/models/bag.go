// internal/models/bag.go
package models

import "time"

// Bag is a catalog product. prod_name doubles as the join key for cart and
// order_items rows, so it must stay unique system-wide.
type Bag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProdName  string    `json:"prod_name" gorm:"uniqueIndex;size:255;not null"`
	ProdDesc  string    `json:"prod_desc" gorm:"type:text"`
	Image     string    `json:"image" gorm:"size:500"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock     int       `json:"stock" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bag) TableName() string { return "bags_tbl" }
