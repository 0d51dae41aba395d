package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe.backend/internal/domain/entities"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/internal/usecases"
)

// ProfileHandler handles the signed-in user's profile, settings and addresses
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
	authUsecase    *usecases.AuthUsecase
}

func NewProfileHandler(profileUsecase *usecases.ProfileUsecase, authUsecase *usecases.AuthUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, authUsecase: authUsecase}
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.profileUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.profileUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword requires the current password
// POST /api/profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// GET /api/profile/preferences
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pref, err := h.profileUsecase.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": pref})
}

// PUT /api/profile/preferences
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.UpdatePreferenceInput
	if !bindJSON(c, &input) {
		return
	}

	pref, err := h.profileUsecase.UpdatePreferences(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": pref})
}

// GET /api/profile/addresses
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.profileUsecase.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"addresses": addresses})
}

// POST /api/profile/addresses
func (h *ProfileHandler) CreateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.AddressInput
	if !bindJSON(c, &input) {
		return
	}

	address, err := h.profileUsecase.CreateAddress(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"address": address})
}

// PUT /api/profile/addresses/:id
func (h *ProfileHandler) UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.AddressUpdate
	if !bindJSON(c, &input) {
		return
	}

	address, err := h.profileUsecase.UpdateAddress(c.Request.Context(), userID, addressID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"address": address})
}

// DELETE /api/profile/addresses/:id
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.profileUsecase.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Address deleted"})
}
