// internal/services/service_test.go
package services_test

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Bag{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name, address string) {
	t.Helper()

	user := models.User{
		Email:   email,
		Name:    name,
		Address: address,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
}

func seedBag(t *testing.T, db *gorm.DB, prodName string, price float64, stock int) {
	t.Helper()

	bag := models.Bag{
		ProdName: prodName,
		ProdDesc: prodName + " description",
		Image:    "/uploads/" + prodName + ".jpg",
		Price:    price,
		Stock:    stock,
	}
	if err := db.Create(&bag).Error; err != nil {
		t.Fatalf("failed to seed bag %s: %v", prodName, err)
	}
}

func addCartLine(t *testing.T, db *gorm.DB, cartService *services.CartService, email, prodName string, price float64, quantity int) {
	t.Helper()

	_, err := cartService.Add(email, &services.AddToCartRequest{
		ProdName: prodName,
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("failed to add %s to cart for %s: %v", prodName, email, err)
	}
}
