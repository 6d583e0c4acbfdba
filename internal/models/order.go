// internal/models/order.go
package models

import "time"

// Order is created once at checkout and never deleted. Address is a snapshot
// of the user's address at order time and is immune to later profile edits.
type Order struct {
	OrderID     uint        `json:"order_id" gorm:"primaryKey"`
	Email       string      `json:"email" gorm:"size:255;not null;index"`
	Address     string      `json:"address" gorm:"size:500"`
	TotalPrice  float64     `json:"total_price" gorm:"type:decimal(10,2);not null"`
	OrderStatus OrderStatus `json:"order_status" gorm:"size:20;default:'Pending'"`
	CreatedAt   time.Time   `json:"created_at"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID       uint    `json:"-" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"index;not null"`
	ProdName string  `json:"prod_name" gorm:"size:255;not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"type:decimal(10,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
