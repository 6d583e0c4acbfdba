// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

// AuthService handles registration and login. Credentials are always stored
// as bcrypt hashes; there is no plaintext comparison anywhere.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address" validate:"required"`
	Birthday string `json:"birthday,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
	IsAdmin     bool         `json:"is_admin"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: email %q is already registered", ErrConflict, req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Address:  req.Address,
		Birthday: req.Birthday,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email %q is already registered", ErrConflict, req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, req.Email)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid password", ErrValidation)
	}

	return s.issueToken(&user)
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(email string, req *ChangePasswordRequest) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %q", ErrNotFound, email)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(&user).Update("password", user.PasswordHash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.Email, user.Name, user.IsAdmin, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
		IsAdmin:     user.IsAdmin,
	}, nil
}
