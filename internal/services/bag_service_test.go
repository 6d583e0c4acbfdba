// internal/services/bag_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/models"
	"github.com/baghaus/marketplace-backend/internal/services"
)

func TestCreateAndListBags(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{Storage: config.StorageConfig{BaseURL: "http://localhost:8800"}}
	bagService := services.NewBagService(db, nil, cfg)
	ctx := context.Background()

	created, err := bagService.CreateBag(ctx, &services.CreateBagRequest{
		ProdName: "Tote",
		ProdDesc: "Canvas tote",
		Image:    "tote.jpg",
		Price:    500,
		Stock:    5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "/uploads/tote.jpg", created.Image)

	bags, err := bagService.ListBags(ctx)
	assert.NoError(t, err)
	assert.Len(t, bags, 1)
	assert.Equal(t, "http://localhost:8800/uploads/tote.jpg", bags[0].Image)
}

func TestCreateBagDuplicateName(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{}
	bagService := services.NewBagService(db, nil, cfg)
	ctx := context.Background()

	req := &services.CreateBagRequest{
		ProdName: "Tote",
		ProdDesc: "Canvas tote",
		Image:    "tote.jpg",
		Price:    500,
		Stock:    5,
	}

	_, err := bagService.CreateBag(ctx, req)
	assert.NoError(t, err)

	_, err = bagService.CreateBag(ctx, req)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestCreateBagValidation(t *testing.T) {
	db := newTestDB(t)
	bagService := services.NewBagService(db, nil, &config.Config{})
	ctx := context.Background()

	_, err := bagService.CreateBag(ctx, &services.CreateBagRequest{
		ProdName: "",
		ProdDesc: "Canvas tote",
		Image:    "tote.jpg",
		Price:    500,
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUpdateBag(t *testing.T) {
	db := newTestDB(t)
	seedBag(t, db, "Tote", 500, 5)
	bagService := services.NewBagService(db, nil, &config.Config{})
	ctx := context.Background()

	var existing models.Bag
	db.Where("prod_name = ?", "Tote").First(&existing)

	updated, err := bagService.UpdateBag(ctx, existing.ID, &services.UpdateBagRequest{
		ProdName: "Tote",
		ProdDesc: "Waxed canvas tote",
		Image:    "/uploads/tote-v2.jpg",
		Price:    650,
		Stock:    8,
	})

	assert.NoError(t, err)
	assert.Equal(t, 650.0, updated.Price)

	var stored models.Bag
	db.First(&stored, existing.ID)
	assert.Equal(t, "Waxed canvas tote", stored.ProdDesc)
	assert.Equal(t, 8, stored.Stock)
}

func TestUpdateBagNotFound(t *testing.T) {
	db := newTestDB(t)
	bagService := services.NewBagService(db, nil, &config.Config{})

	_, err := bagService.UpdateBag(context.Background(), 999, &services.UpdateBagRequest{
		ProdName: "Tote",
		ProdDesc: "Canvas tote",
		Image:    "tote.jpg",
		Price:    500,
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteBag(t *testing.T) {
	db := newTestDB(t)
	seedBag(t, db, "Tote", 500, 5)
	bagService := services.NewBagService(db, nil, &config.Config{})
	ctx := context.Background()

	var existing models.Bag
	db.Where("prod_name = ?", "Tote").First(&existing)

	deleted, err := bagService.DeleteBag(ctx, existing.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Tote", deleted.ProdName)

	_, err = bagService.DeleteBag(ctx, existing.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	var count int64
	db.Model(&models.Bag{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetBagAbsoluteImageURL(t *testing.T) {
	db := newTestDB(t)
	seedBag(t, db, "Tote", 500, 5)
	cfg := &config.Config{Storage: config.StorageConfig{BaseURL: "http://localhost:8800"}}
	bagService := services.NewBagService(db, nil, cfg)

	var existing models.Bag
	db.Where("prod_name = ?", "Tote").First(&existing)

	bag, err := bagService.GetBag(context.Background(), existing.ID)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8800/uploads/Tote.jpg", bag.Image)
}
