// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/i18n"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.userService.GetProfile(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}
