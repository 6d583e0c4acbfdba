// internal/services/user_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/services"
)

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	userService := services.NewUserService(db)

	user, err := userService.GetProfile("alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = userService.GetProfile("ghost@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateProfileLeavesOrderAddressAlone(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	seedBag(t, db, "Tote", 500, 5)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, nil, nil)
	userService := services.NewUserService(db)

	addCartLine(t, db, cartService, "alice@example.com", "Tote", 500, 1)
	orderID, err := orderService.Checkout("alice@example.com", &services.CheckoutRequest{
		SelectedItems: []string{"Tote"},
	})
	assert.NoError(t, err)

	_, err = userService.UpdateProfile("alice@example.com", &services.UpdateProfileRequest{
		Name:    "Alice B",
		Address: "99 New Street",
	})
	assert.NoError(t, err)

	var user models.User
	db.Where("email = ?", "alice@example.com").First(&user)
	assert.Equal(t, "Alice B", user.Name)
	assert.Equal(t, "99 New Street", user.Address)

	// The order keeps the address it shipped with.
	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, "12 Harbor Lane", order.Address)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "12 Harbor Lane")
	userService := services.NewUserService(db)

	_, err := userService.UpdateProfile("alice@example.com", &services.UpdateProfileRequest{
		Name:    "",
		Address: "99 New Street",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}
