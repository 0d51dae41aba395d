package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/pkg/logger"
)

const (
	// SessionCookieName is the cookie carrying the session id
	SessionCookieName = "session_id"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserKey is the context key for the authenticated user
	UserKey = "user"
	// SessionIDKey is the context key for the session id
	SessionIDKey = "sessionId"
)

// Authenticator resolves a session id to its user
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*entities.User, error)
}

// SessionAuthMiddleware requires a valid session cookie
func SessionAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			abort(c, domainerrors.Unauthorized("Authentication required"))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), sessionID)
		if err != nil {
			switch {
			case errors.Is(err, domainerrors.ErrAccountSuspended):
				abort(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeAccountSuspended, "Account is suspended", err))
			case errors.Is(err, domainerrors.ErrUnauthorized):
				abort(c, domainerrors.Unauthorized("Session is invalid or expired"))
			default:
				logger.Error(c.Request.Context(), "Session lookup failed", zap.Error(err))
				abort(c, domainerrors.InternalError(err))
			}
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// RequireAdmin rejects authenticated users without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			abort(c, domainerrors.Unauthorized("Authentication required"))
			return
		}
		if !user.IsAdmin {
			abort(c, domainerrors.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUser gets the authenticated user from context
func GetUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok && user != nil
}

func abort(c *gin.Context, appErr *domainerrors.AppError) {
	response.Error(c, appErr)
	c.Abort()
}
