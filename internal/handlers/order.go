// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	orderID, err := h.orderService.Checkout(email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyOrderPlaced),
		"order_id": orderID,
	})
}

// GET /orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, ok := utils.GetUserEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
		return
	}

	orders, err := h.orderService.ListOrders(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /admin/orders
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListAllOrders(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/orders/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.orderService.UpdateStatus(&req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
	})
}
