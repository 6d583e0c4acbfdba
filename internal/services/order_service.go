// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/cache"
	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

// OrderService converts selected cart lines into persisted orders and tracks
// their fulfillment status. The whole checkout sequence runs inside a single
// database transaction: either the order, its items, the stock decrements and
// the cart deletion all land, or none of them do.
type OrderService struct {
	db                  *gorm.DB
	cache               *cache.Client
	notificationService *NotificationService
}

type CheckoutRequest struct {
	SelectedItems []string `json:"selected_items" validate:"required,min=1,dive,required"`
}

type UpdateOrderStatusRequest struct {
	OrderID uint   `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// OrderSummary is the order-history shape: one order with its items and the
// customer's current display name.
type OrderSummary struct {
	OrderID      uint               `json:"order_id"`
	Email        string             `json:"email"`
	TotalPrice   float64            `json:"total_price"`
	Address      string             `json:"address"`
	OrderStatus  models.OrderStatus `json:"order_status"`
	CustomerName string             `json:"customer_name"`
	Items        []models.OrderItem `json:"items"`
	Purchases    []string           `json:"purchases"`
}

// checkoutLine is a selected cart row joined with the product's live stock.
type checkoutLine struct {
	CartID   uint
	ProdName string
	Price    float64
	Quantity int
	Stock    int
}

func NewOrderService(db *gorm.DB, cacheClient *cache.Client, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		cache:               cacheClient,
		notificationService: notificationService,
	}
}

// Checkout creates one order from the user's selected cart lines.
//
// Protocol: validate selection, fetch selected lines with current stock,
// reject the whole batch if any line exceeds stock, snapshot the user's
// address, total = sum of unit price * quantity, insert the order and its
// items, decrement stock per item, delete the selected lines. A conditional
// decrement (stock = stock - q only while stock >= q) guards against two
// concurrent checkouts racing past the earlier read; if it affects no rows
// the transaction rolls back with a conflict.
func (s *OrderService) Checkout(email string, req *CheckoutRequest) (uint, error) {
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("%w: no items selected for checkout", ErrValidation)
	}

	var orderID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []checkoutLine
		err := tx.Table("cart").
			Select("cart.cart_id, cart.prod_name, cart.price, cart.quantity, bags_tbl.stock").
			Joins("JOIN bags_tbl ON cart.prod_name = bags_tbl.prod_name").
			Where("cart.email = ? AND cart.prod_name IN ?", email, req.SelectedItems).
			Scan(&lines).Error
		if err != nil {
			return fmt.Errorf("failed to fetch cart lines: %w", err)
		}

		if len(lines) == 0 {
			return fmt.Errorf("%w: selected items not found in cart", ErrNotFound)
		}

		for _, line := range lines {
			if line.Quantity > line.Stock {
				return fmt.Errorf("%w: insufficient stock for %q", ErrConflict, line.ProdName)
			}
		}

		var user models.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %q", ErrNotFound, email)
			}
			return fmt.Errorf("database error: %w", err)
		}

		var totalPrice float64
		for _, line := range lines {
			totalPrice += line.Price * float64(line.Quantity)
		}

		order := models.Order{
			Email:       email,
			Address:     user.Address,
			TotalPrice:  totalPrice,
			OrderStatus: models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			item := models.OrderItem{
				OrderID:  order.OrderID,
				ProdName: line.ProdName,
				Quantity: line.Quantity,
				Price:    line.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			result := tx.Model(&models.Bag{}).
				Where("prod_name = ? AND stock >= ?", line.ProdName, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				// Stock moved underneath us since the read above.
				return fmt.Errorf("%w: insufficient stock for %q", ErrConflict, line.ProdName)
			}
		}

		if err := tx.Where("email = ? AND prod_name IN ?", email, req.SelectedItems).
			Delete(&models.CartLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart lines: %w", err)
		}

		orderID = order.OrderID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidateCatalogCache(req.SelectedItems)

	if s.notificationService != nil {
		go func() {
			if err := s.notificationService.SendOrderConfirmation(email, orderID); err != nil {
				logrus.WithError(err).WithField("order_id", orderID).
					Warn("failed to send order confirmation")
			}
		}()
	}

	return orderID, nil
}

// ListOrders returns the order history for one user, newest first.
func (s *OrderService) ListOrders(email string) ([]OrderSummary, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, email)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items").
		Where("email = ?", email).
		Order("order_id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, s.summarize(order, user.Name))
	}

	return summaries, nil
}

// ListAllOrders returns a page of orders with their items for the admin view.
func (s *OrderService) ListAllOrders(params utils.PaginationParams) ([]OrderSummary, int64, error) {
	query := s.db.Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"order_id", "created_at", "total_price", "order_status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	// Resolve customer names in one pass.
	names := make(map[string]string)
	var users []models.User
	if err := s.db.Select("email, name").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, u := range users {
		names[u.Email] = u.Name
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, s.summarize(order, names[order.Email]))
	}

	return summaries, total, nil
}

// UpdateStatus overwrites an order's fulfillment label. Any known status may
// replace any other; unknown labels are rejected.
func (s *OrderService) UpdateStatus(req *UpdateOrderStatusRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: order id and status are required", ErrValidation)
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, req.Status)
	}

	result := s.db.Model(&models.Order{}).
		Where("order_id = ?", req.OrderID).
		Update("order_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %d", ErrNotFound, req.OrderID)
	}

	if s.notificationService != nil {
		go func() {
			if err := s.notificationService.SendStatusUpdate(req.OrderID, status); err != nil {
				logrus.WithError(err).WithField("order_id", req.OrderID).
					Warn("failed to send status update")
			}
		}()
	}

	return nil
}

func (s *OrderService) summarize(order models.Order, customerName string) OrderSummary {
	purchases := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		purchases = append(purchases, item.ProdName)
	}

	status := order.OrderStatus
	if status == "" {
		status = models.OrderStatusPending
	}

	return OrderSummary{
		OrderID:      order.OrderID,
		Email:        order.Email,
		TotalPrice:   order.TotalPrice,
		Address:      order.Address,
		OrderStatus:  status,
		CustomerName: customerName,
		Items:        order.Items,
		Purchases:    purchases,
	}
}

func (s *OrderService) invalidateCatalogCache(prodNames []string) {
	keys := make([]string, 0, len(prodNames)+1)
	keys = append(keys, cacheKeyAllBags)
	for _, name := range prodNames {
		keys = append(keys, cacheKeyBag(name))
	}
	s.cache.Delete(context.Background(), keys...)
}
