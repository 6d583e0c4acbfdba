// internal/handlers/order_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/handlers"
	"github.com/baghaus/marketplace-backend/internal/middleware"
	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

func setupOrderRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-key")

	db := newHandlerTestDB(t)
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(db, nil, nil))

	r := gin.New()
	r.Use(gin.Recovery())

	authenticated := r.Group("/v1")
	authenticated.Use(middleware.AuthRequired())
	{
		authenticated.GET("/orders", orderHandler.GetMyOrders)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/status", orderHandler.UpdateStatus)
	}

	return r, db
}

func seedOrder(t *testing.T, db *gorm.DB, email string, total float64) uint {
	t.Helper()

	order := models.Order{
		Email:       email,
		Address:     "12 Harbor Lane",
		TotalPrice:  total,
		OrderStatus: models.OrderStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order.OrderID
}

func TestGetMyOrders(t *testing.T) {
	r, db := setupOrderRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")
	seedOrder(t, db, "alice@example.com", 500)
	seedOrder(t, db, "bob@example.com", 250)
	token := bearerToken(t, "alice@example.com", "Alice", false)

	recorder := performRequest(r, http.MethodGet, "/v1/orders", token, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "alice@example.com")
	assert.NotContains(t, recorder.Body.String(), "bob@example.com")
}

func TestAdminOrdersRejectsNonAdmin(t *testing.T) {
	r, _ := setupOrderRouter(t)
	token := bearerToken(t, "alice@example.com", "Alice", false)

	recorder := performRequest(r, http.MethodGet, "/v1/admin/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAdminOrdersPaginated(t *testing.T) {
	r, db := setupOrderRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")
	for i := 0; i < 5; i++ {
		seedOrder(t, db, "alice@example.com", 100)
	}
	token := bearerToken(t, "admin@baghaus.shop", "Admin", true)

	recorder := performRequest(r, http.MethodGet, "/v1/admin/orders?page=1&limit=2&sort=order_id&order=asc", token, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "5", recorder.Header().Get("X-Total-Count"))
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	r, db := setupOrderRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")
	orderID := seedOrder(t, db, "alice@example.com", 500)
	token := bearerToken(t, "admin@baghaus.shop", "Admin", true)

	recorder := performRequest(r, http.MethodPut, "/v1/admin/orders/status", token, gin.H{
		"order_id": orderID,
		"status":   "Shipped",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)
}

func TestAdminUpdateOrderStatusUnknownLabel(t *testing.T) {
	r, db := setupOrderRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")
	orderID := seedOrder(t, db, "alice@example.com", 500)
	token := bearerToken(t, "admin@baghaus.shop", "Admin", true)

	recorder := performRequest(r, http.MethodPut, "/v1/admin/orders/status", token, gin.H{
		"order_id": orderID,
		"status":   "Lost",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAdminUpdateOrderStatusMissingOrder(t *testing.T) {
	r, _ := setupOrderRouter(t)
	token := bearerToken(t, "admin@baghaus.shop", "Admin", true)

	recorder := performRequest(r, http.MethodPut, "/v1/admin/orders/status", token, gin.H{
		"order_id": 999,
		"status":   "Delivered",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
