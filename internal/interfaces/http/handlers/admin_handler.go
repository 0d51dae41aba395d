package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/internal/usecases"
)

// AdminHandler handles admin user management endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers lists users, optionally filtered
// GET /api/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ToggleSuspension flips a user's suspended flag
// POST /api/admin/users/:id/toggle-suspension
func (h *AdminHandler) ToggleSuspension(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminUsecase.ToggleSuspension(c.Request.Context(), actorID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ToggleAdmin flips a user's admin flag
// POST /api/admin/users/:id/toggle-admin
func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminUsecase.ToggleAdmin(c.Request.Context(), actorID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
