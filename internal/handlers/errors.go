// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

// respondServiceError maps a service error kind onto the HTTP response
// envelope: validation -> 400, not-found -> 404, conflict -> 409, anything
// else -> 500 with the message withheld from the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, "")
	}
}
