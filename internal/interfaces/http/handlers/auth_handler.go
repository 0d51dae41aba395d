package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/interfaces/http/middleware"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/internal/usecases"
)

// AuthHandler handles registration, login and password reset endpoints
type AuthHandler struct {
	authUsecase         *usecases.AuthUsecase
	registrationUsecase *usecases.RegistrationUsecase
	cookieSecure        bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, registrationUsecase *usecases.RegistrationUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:         authUsecase,
		registrationUsecase: registrationUsecase,
		cookieSecure:        cookieSecure,
	}
}

// RegisterInit issues a verification code
// POST /api/auth/register/init
func (h *AuthHandler) RegisterInit(c *gin.Context) {
	var input entities.RegisterInitInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.registrationUsecase.Init(c.Request.Context(), input.Email); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeConflict, "Email already registered", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Verification code sent",
		"email":   input.Email,
	})
}

// RegisterVerify checks a verification code
// POST /api/auth/register/verify
func (h *AuthHandler) RegisterVerify(c *gin.Context) {
	var input entities.RegisterVerifyInput
	if !bindJSON(c, &input) {
		return
	}

	ok, err := h.registrationUsecase.Verify(c.Request.Context(), input.Email, input.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "Invalid or expired verification code", domainerrors.ErrInvalidCode))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified",
		"email":   input.Email,
	})
}

// RegisterComplete creates the account
// POST /api/auth/register/complete
func (h *AuthHandler) RegisterComplete(c *gin.Context) {
	var input entities.RegisterCompleteInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.registrationUsecase.Complete(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeBadRequest, "No pending registration for this email", err))
			return
		}
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeConflict, "Email already registered", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"email":   user.Email,
			"isAdmin": user.IsAdmin,
		},
	})
}

// Login opens a session
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, authResponse.SessionID, int(h.authUsecase.SessionTTL().Seconds()))
	response.Success(c, http.StatusOK, gin.H{"user": authResponse.User})
}

// Logout destroys the session
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	if err := h.authUsecase.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ForgotPassword sends a reset code. The response does not reveal whether
// the email is registered.
// POST /api/auth/password/forgot
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email is registered, a reset code has been sent",
	})
}

// ResetPassword sets a new password using a reset code
// POST /api/auth/password/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
