// internal/handlers/rating.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// GET /ratings?prod_name=...
func (h *RatingHandler) ListByProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	prodName := c.Query("prod_name")
	if prodName == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "prod_name"), nil)
		return
	}

	ratings, err := h.ratingService.ListByProduct(prodName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"ratings": ratings,
	})
}

// POST /reviews
func (h *RatingHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	rating, err := h.ratingService.Submit(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewSubmitted),
		"rating":  rating,
	})
}
