// internal/services/bag_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/cache"
	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

const cacheKeyAllBags = "bags:all"

func cacheKeyBag(prodName string) string {
	return "bags:" + prodName
}

// BagService owns the product catalog. Reads go through the Redis cache;
// every write invalidates the affected keys.
type BagService struct {
	db    *gorm.DB
	cache *cache.Client
	cfg   *config.Config
}

type CreateBagRequest struct {
	ProdName string  `json:"prod_name" validate:"required,min=1,max=255"`
	ProdDesc string  `json:"prod_desc" validate:"required"`
	Image    string  `json:"image" validate:"required"`
	Price    float64 `json:"price" validate:"required,min=0.01"`
	Stock    int     `json:"stock_no" validate:"min=0"`
}

type UpdateBagRequest struct {
	ProdName string  `json:"prod_name" validate:"required,min=1,max=255"`
	ProdDesc string  `json:"prod_desc" validate:"required"`
	Image    string  `json:"image" validate:"required"`
	Price    float64 `json:"price" validate:"required,min=0.01"`
	Stock    int     `json:"stock" validate:"min=0"`
}

func NewBagService(db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) *BagService {
	return &BagService{
		db:    db,
		cache: cacheClient,
		cfg:   cfg,
	}
}

// ListBags returns the whole catalog with absolute image URLs.
func (s *BagService) ListBags(ctx context.Context) ([]models.Bag, error) {
	var bags []models.Bag
	if s.cache.GetJSON(ctx, cacheKeyAllBags, &bags) {
		return bags, nil
	}

	if err := s.db.Order("id").Find(&bags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch bags: %w", err)
	}

	for i := range bags {
		bags[i].Image = s.absoluteImageURL(bags[i].Image)
	}

	s.cache.SetJSON(ctx, cacheKeyAllBags, bags)
	return bags, nil
}

func (s *BagService) GetBag(ctx context.Context, id uint) (*models.Bag, error) {
	var bag models.Bag
	if err := s.db.First(&bag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	bag.Image = s.absoluteImageURL(bag.Image)
	return &bag, nil
}

func (s *BagService) CreateBag(ctx context.Context, req *CreateBagRequest) (*models.Bag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	bag := models.Bag{
		ProdName: req.ProdName,
		ProdDesc: req.ProdDesc,
		Image:    normalizeImagePath(req.Image),
		Price:    req.Price,
		Stock:    req.Stock,
	}

	if err := s.db.Create(&bag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: product name %q already exists", ErrConflict, req.ProdName)
		}
		return nil, fmt.Errorf("failed to create bag: %w", err)
	}

	s.cache.Delete(ctx, cacheKeyAllBags)
	return &bag, nil
}

func (s *BagService) UpdateBag(ctx context.Context, id uint, req *UpdateBagRequest) (*models.Bag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var bag models.Bag
	if err := s.db.First(&bag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldName := bag.ProdName
	updates := map[string]interface{}{
		"prod_name": req.ProdName,
		"prod_desc": req.ProdDesc,
		"image":     normalizeImagePath(req.Image),
		"price":     req.Price,
		"stock":     req.Stock,
	}

	if err := s.db.Model(&bag).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: product name %q already exists", ErrConflict, req.ProdName)
		}
		return nil, fmt.Errorf("failed to update bag: %w", err)
	}

	s.cache.Delete(ctx, cacheKeyAllBags, cacheKeyBag(oldName), cacheKeyBag(req.ProdName))
	return &bag, nil
}

// DeleteBag removes a catalog entry and returns the deleted row so callers
// can clean up the stored image.
func (s *BagService) DeleteBag(ctx context.Context, id uint) (*models.Bag, error) {
	var bag models.Bag
	if err := s.db.First(&bag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&bag).Error; err != nil {
		return nil, fmt.Errorf("failed to delete bag: %w", err)
	}

	s.cache.Delete(ctx, cacheKeyAllBags, cacheKeyBag(bag.ProdName))
	return &bag, nil
}

// absoluteImageURL turns stored /uploads/ paths into full URLs, leaving
// already-absolute URLs (for example S3 or CloudFront) alone.
func (s *BagService) absoluteImageURL(image string) string {
	if strings.HasPrefix(image, "/uploads/") {
		return s.cfg.Storage.BaseURL + image
	}
	return image
}

func normalizeImagePath(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if strings.Contains(image, "/uploads/") {
		return image
	}
	return "/uploads/" + image
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// gorm v2 surfaces driver-agnostic duplicate errors as ErrDuplicatedKey.
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
