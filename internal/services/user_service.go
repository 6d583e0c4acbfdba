// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Address  string `json:"address" validate:"required"`
	Birthday string `json:"birthday,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetProfile(email string) (*models.User, error) {
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

	return &user, nil
}

// UpdateProfile edits name, address and birthday. Orders keep the address
// snapshot taken at checkout time; profile edits never reach past orders.
func (s *UserService) UpdateProfile(email string, req *UpdateProfileRequest) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, email)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"address":  req.Address,
		"birthday": req.Birthday,
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}
