// internal/handlers/bag.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type BagHandler struct {
	bagService     *services.BagService
	storageService *services.StorageService
}

func NewBagHandler(bagService *services.BagService, storageService *services.StorageService) *BagHandler {
	return &BagHandler{
		bagService:     bagService,
		storageService: storageService,
	}
}

// GET /bags
func (h *BagHandler) ListBags(c *gin.Context) {
	bags, err := h.bagService.ListBags(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bags": bags,
	})
}

// GET /bags/:id
func (h *BagHandler) GetBag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid bag ID", nil)
		return
	}

	bag, err := h.bagService.GetBag(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bag": bag,
	})
}

// POST /admin/bags
func (h *BagHandler) CreateBag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateBagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	bag, err := h.bagService.CreateBag(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBagCreated),
		"bag":     bag,
	})
}

// PUT /admin/bags/:id
func (h *BagHandler) UpdateBag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid bag ID", nil)
		return
	}

	var req services.UpdateBagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	bag, err := h.bagService.UpdateBag(c.Request.Context(), uint(id), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBagUpdated),
		"bag":     bag,
	})
}

// DELETE /admin/bags/:id
func (h *BagHandler) DeleteBag(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid bag ID", nil)
		return
	}

	bag, err := h.bagService.DeleteBag(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Locally stored images go away with the catalog entry.
	if key := strings.TrimPrefix(bag.Image, "/uploads/"); key != bag.Image && key != "" {
		if err := h.storageService.DeleteFile(key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to delete product image")
		}
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBagDeleted),
	})
}

// POST /admin/upload
func (h *BagHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, fileHeader, h.storageService.GetDefaultUploadOptions())
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFileUploadSuccess),
		"imageUrl": result.URL,
	})
}
