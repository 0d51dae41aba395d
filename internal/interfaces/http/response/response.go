package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "wardrobe.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors are sent as they are; known
// domain sentinels get their usual status; anything else is a 500 with a
// generic message.
func Error(c *gin.Context, err error) {
	appErr := FromError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// FromError converts err into the AppError that Error would send
func FromError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest("Invalid input")
	case errors.Is(err, domainerrors.ErrPasswordMismatch):
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "Passwords do not match", err)
	case errors.Is(err, domainerrors.ErrInvalidCode):
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "Invalid or expired code", err)
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", err)
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("Unauthorized")
	case errors.Is(err, domainerrors.ErrAccountSuspended):
		return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeAccountSuspended, "Account is suspended", err)
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Forbidden")
	case errors.Is(err, domainerrors.ErrDeliveryFailed):
		return domainerrors.NewAppError(http.StatusInternalServerError, domainerrors.CodeDeliveryFailed, "Could not deliver the code, try again later", err)
	}
	return domainerrors.InternalError(err)
}
