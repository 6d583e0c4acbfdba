// internal/services/rating_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type RatingService struct {
	db *gorm.DB
}

type SubmitReviewRequest struct {
	OrderID uint   `json:"order_id" validate:"required"`
	BagID   string `json:"bag_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

func (s *RatingService) ListByProduct(prodName string) ([]models.Rating, error) {
	if prodName == "" {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	var ratings []models.Rating
	if err := s.db.Where("product_id = ?", prodName).
		Order("id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	return ratings, nil
}

// Submit records one review. Multiple reviews for the same order and product
// are allowed; the schema carries no uniqueness constraint.
func (s *RatingService) Submit(req *SubmitReviewRequest) (*models.Rating, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, req.OrderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	rating := models.Rating{
		OrderID:   req.OrderID,
		ProductID: req.BagID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.db.Create(&rating).Error; err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	return &rating, nil
}
