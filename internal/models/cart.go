// internal/models/cart.go
package models

// CartLine is one pending purchase intention: a single row per
// (email, prod_name) pair. Price is the UNIT price at the time the line was
// created; totals are always computed as price * quantity at read time.
type CartLine struct {
	CartID   uint    `json:"cart_id" gorm:"primaryKey"`
	Email    string  `json:"email" gorm:"size:255;not null;index:idx_cart_email_prod,unique"`
	ProdName string  `json:"prod_name" gorm:"size:255;not null;index:idx_cart_email_prod,unique"`
	Price    float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
}

func (CartLine) TableName() string { return "cart" }

// CartLineView is a cart row joined with the product image for display.
type CartLineView struct {
	CartID   uint    `json:"cart_id"`
	ProdName string  `json:"prod_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}
