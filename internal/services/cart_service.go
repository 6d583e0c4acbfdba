// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

// CartService maintains the per-user set of pending purchase intentions.
// Stock is deliberately NOT checked on Add; the only stock guards are the
// increment condition and the checkout re-check.
type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	ProdName string  `json:"prod_name" validate:"required"`
	Price    float64 `json:"price" validate:"required,min=0.01"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Add upserts a cart line for (email, prod_name). An existing line has its
// quantity incremented by the requested amount; its stored unit price is left
// unchanged. Lines always store unit price, so no total drifts on increment.
func (s *CartService) Add(email string, req *AddToCartRequest) (*models.CartLine, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	// The product must exist; cart rows join bags_tbl by prod_name everywhere.
	var bag models.Bag
	if err := s.db.Where("prod_name = ?", req.ProdName).First(&bag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, req.ProdName)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var line models.CartLine
	err := s.db.Where("email = ? AND prod_name = ?", email, req.ProdName).First(&line).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}

		line = models.CartLine{
			Email:    email,
			ProdName: req.ProdName,
			Price:    req.Price,
			Quantity: req.Quantity,
		}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart line: %w", err)
		}
		return &line, nil
	}

	if err := s.db.Model(&line).
		Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	line.Quantity += req.Quantity
	return &line, nil
}

// List returns the user's cart lines joined with the product image.
// An empty cart is an empty slice, not an error.
func (s *CartService) List(email string) ([]models.CartLineView, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var lines []models.CartLineView
	err := s.db.Table("cart").
		Select("cart.cart_id, cart.prod_name, cart.price, cart.quantity, bags_tbl.image").
		Joins("JOIN bags_tbl ON cart.prod_name = bags_tbl.prod_name").
		Where("cart.email = ?", email).
		Order("cart.cart_id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	return lines, nil
}

// Increment bumps a line's quantity by one, but only while the resulting
// quantity stays within the product's current stock. Zero rows affected means
// the line does not exist or is already at capacity; the two cases are not
// distinguished, matching the single-statement guard.
func (s *CartService) Increment(email, prodName string) error {
	if email == "" || prodName == "" {
		return fmt.Errorf("%w: email and prod_name are required", ErrValidation)
	}

	result := s.db.Model(&models.CartLine{}).
		Where("email = ? AND prod_name = ?", email, prodName).
		Where("quantity < (?)", s.db.Model(&models.Bag{}).
			Select("stock").Where("prod_name = ?", prodName)).
		Update("quantity", gorm.Expr("quantity + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment cart line: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart line for %q missing or already at stock limit", ErrConflict, prodName)
	}

	return nil
}

// Decrement lowers a line's quantity by one, but never below 1. Remove is the
// only path to an empty line. Zero rows affected means the line does not
// exist or sits at the floor; not distinguished.
func (s *CartService) Decrement(email, prodName string) error {
	if email == "" || prodName == "" {
		return fmt.Errorf("%w: email and prod_name are required", ErrValidation)
	}

	result := s.db.Model(&models.CartLine{}).
		Where("email = ? AND prod_name = ?", email, prodName).
		Where("quantity > 1").
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement cart line: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart line for %q missing or already at quantity 1", ErrConflict, prodName)
	}

	return nil
}

// Remove deletes one user's line for a product. Deletion is scoped to
// (email, prod_name); the legacy behavior of deleting the product from every
// user's cart was a defect, not a contract.
func (s *CartService) Remove(email, prodName string) error {
	if email == "" || prodName == "" {
		return fmt.Errorf("%w: email and prod_name are required", ErrValidation)
	}

	result := s.db.Where("email = ? AND prod_name = ?", email, prodName).
		Delete(&models.CartLine{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart line: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cart line for %q", ErrNotFound, prodName)
	}

	return nil
}
