// internal/services/order_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/services"
)

func TestCheckoutCreatesOrderAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)

	orderID, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})

	assert.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	assert.NoError(t, db.Preload("Items").First(&order, orderID).Error)
	assert.Equal(t, "alice@example.com", order.Email)
	assert.Equal(t, 500.0, order.TotalPrice)
	assert.Equal(t, "12 Harbor Lane", order.Address)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Tote", order.Items[0].ProdName)
	assert.Equal(t, 1, order.Items[0].Quantity)

	var bag models.Bag
	db.Where("prod_name = ?", "Tote").First(&bag)
	assert.Equal(t, 4, bag.Stock)

	var cartCount int64
	db.Model(&models.CartLine{}).Where("email = ?", "alice@example.com").Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestCheckoutLeavesUnselectedLines(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	seedBag(t, db, "Clutch", 250, 5)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 2)
	addCartLine(t, db, cartService, "alice@example.com", "Clutch", 250, 1)

	orderID, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})

	assert.NoError(t, err)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, 1000.0, order.TotalPrice)

	var remaining []models.CartLine
	db.Where("email = ?", "alice@example.com").Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "Clutch", remaining[0].ProdName)
}

func TestCheckoutEmptySelection(t *testing.T) {
	db := newTestDB(t)
	orderService := services.NewOrderService(db, nil, nil)

	_, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCheckoutSelectionNotInCart(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	orderService := services.NewOrderService(db, nil, nil)

	_, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCheckoutInsufficientStockRollsBackBatch(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	seedBag(t, db, "Clutch", 250, 1)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)
	// Quantity above stock; cart never re-checks on Add.
	addCartLine(t, db, cartService, "alice@example.com", "Clutch", 250, 2)

	_, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote", "Clutch"},
	})

	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "Clutch")

	// One bad line fails the whole batch: no order, no stock movement, cart intact.
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	var tote models.Bag
	db.Where("prod_name = ?", "Tote").First(&tote)
	assert.Equal(t, 5, tote.Stock)

	var cartCount int64
	db.Model(&models.CartLine{}).Where("email = ?", "alice@example.com").Count(&cartCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestCheckoutLastUnitOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedUser(t, db, "bob@example.com", "Bob", "7 Quay Street")
	seedBag(t, db, "Tote", 500, 1)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)
	addCartLine(t, db, cartService, "bob@example.com", "Tote", 500, 1)

	_, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.NoError(t, err)

	_, err = orderService.Checkout("bob@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.ErrorIs(t, err, services.ErrConflict)

	var bag models.Bag
	db.Where("prod_name = ?", "Tote").First(&bag)
	assert.Equal(t, 0, bag.Stock)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestCartLifecycleThroughCheckout(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 2)

	assert.NoError(t, cartService.Increment("alice@example.com", "Tote"))
	assert.NoError(t, cartService.Decrement("alice@example.com", "Tote"))
	assert.NoError(t, cartService.Decrement("alice@example.com", "Tote"))

	var line models.CartLine
	db.Where("email = ? AND prod_name = ?", "alice@example.com", "Tote").First(&line)
	assert.Equal(t, 1, line.Quantity)

	orderID, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.NoError(t, err)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, 500.0, order.TotalPrice)

	var bag models.Bag
	db.Where("prod_name = ?", "Tote").First(&bag)
	assert.Equal(t, 4, bag.Stock)

	lines, err := cartService.List("alice@example.com")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 10)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	for i := 0; i < 3; i++ {
		addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)
		_, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
			SelectedItems: []string{"Tote"},
		})
		assert.NoError(t, err)
	}

	orders, err := orderService.ListOrders("alice@example.com")

	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Greater(t, orders[0].OrderID, orders[1].OrderID)
	assert.Greater(t, orders[1].OrderID, orders[2].OrderID)
	assert.Equal(t, "Alice", orders[0].CustomerName)
	assert.Equal(t, []string{"Tote"}, orders[0].Purchases)
}

func TestListOrdersUnknownUser(t *testing.T) {
	db := newTestDB(t)
	orderService := services.NewOrderService(db, nil, nil)

	_, err := orderService.ListOrders("ghost@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)
	orderID, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.NoError(t, err)

	err = orderService.UpdateStatus(&services.UpdateOrderStatusRequest{
		OrderID: orderID,
		Status:  string(models.OrderStatusShipped),
	})
	assert.NoError(t, err)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)

	// Any known label may replace any other, including moving backwards.
	err = orderService.UpdateStatus(&services.UpdateOrderStatusRequest{
		OrderID: orderID,
		Status:  string(models.OrderStatusPreparing),
	})
	assert.NoError(t, err)
}

func TestUpdateStatusRejectsUnknownLabel(t *testing.T) {
	db := newTestDB(t)
	orderService := services.NewOrderService(db, nil, nil)

	err := orderService.UpdateStatus(&services.UpdateOrderStatusRequest{
		OrderID: 1,
		Status:  "Teleported",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	orderService := services.NewOrderService(db, nil, nil)

	err := orderService.UpdateStatus(&services.UpdateOrderStatusRequest{
		OrderID: 999,
		Status:  string(models.OrderStatusDelivered),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}
