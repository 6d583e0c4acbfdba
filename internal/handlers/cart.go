// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartLineRef struct {
	ProdName string `json:"prod_name" validate:"required"`
}

// POST /cart
func (h *CartHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	line, err := h.cartService.Add(email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
		"line":    line,
	})
}

// GET /cart
func (h *CartHandler) List(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	lines, err := h.cartService.List(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"cart": lines,
	})
}

// PATCH /cart/increment
func (h *CartHandler) Increment(c *gin.Context) {
	h.adjustQuantity(c, h.cartService.Increment)
}

// PATCH /cart/decrement
func (h *CartHandler) Decrement(c *gin.Context) {
	h.adjustQuantity(c, h.cartService.Decrement)
}

func (h *CartHandler) adjustQuantity(c *gin.Context, adjust func(email, prodName string) error) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req cartLineRef
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := adjust(email, req.ProdName); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
	})
}

// DELETE /cart/:prod_name
func (h *CartHandler) Remove(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	prodName := c.Param("prod_name")
	if prodName == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "prod_name"), nil)
		return
	}

	if err := h.cartService.Remove(email, prodName); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartLineRemoved),
	})
}
