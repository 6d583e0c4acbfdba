// internal/models/common.go
package models

// OrderStatus is a free-form fulfillment label. No transition graph is
// enforced; the admin endpoint may overwrite any status with any other.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// KnownOrderStatuses lists the labels the admin side is allowed to set.
var KnownOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, known := range KnownOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
