package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/crypto"
	"wardrobe.backend/pkg/jwt"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/redis"
)

// SessionStore keeps server-side login sessions
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// CodeStore keeps one-time codes keyed by email
type CodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

var newSessionID = uuid.NewString

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	store      repositories.Store
	sessions   SessionStore
	resetCodes CodeStore
	jwtService *jwt.JWTService
	delivery   codeDelivery
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// AuthOptions groups the auth usecase settings
type AuthOptions struct {
	SessionTTL  time.Duration
	ResetTTL    time.Duration
	DevFallback bool
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	store repositories.Store,
	sessions SessionStore,
	resetCodes CodeStore,
	jwtService *jwt.JWTService,
	notifier Notifier,
	opts AuthOptions,
) *AuthUsecase {
	return &AuthUsecase{
		store:      store,
		sessions:   sessions,
		resetCodes: resetCodes,
		jwtService: jwtService,
		delivery:   codeDelivery{notifier: notifier, devFallback: opts.DevFallback},
		sessionTTL: opts.SessionTTL,
		resetTTL:   opts.ResetTTL,
	}
}

// SessionTTL is how long a login session lives
func (u *AuthUsecase) SessionTTL() time.Duration {
	return u.sessionTTL
}

// Login checks credentials and opens a session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.store.Users().GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if user.IsSuspended {
		return nil, domainerrors.ErrAccountSuspended
	}

	sessionID := newSessionID()
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, sessionID)
	if err != nil {
		return nil, err
	}

	err = u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:       user.ID,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		CreatedAt:    time.Now().UTC(),
	}, u.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger.Info(ctx, "User logged in", zap.String("user_id", user.ID.String()))
	return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
}

// Logout destroys the session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// Authenticate resolves a session id to its user. Sessions of suspended
// users are destroyed.
func (u *AuthUsecase) Authenticate(ctx context.Context, sessionID string) (*entities.User, error) {
	if sessionID == "" {
		return nil, domainerrors.ErrUnauthorized
	}
	data, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	claims, err := u.jwtService.ValidateToken(data.RefreshToken)
	if err != nil || claims.ID != sessionID || claims.UserID != data.UserID {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.store.Users().GetByID(ctx, data.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.IsSuspended {
		if err := u.sessions.DeleteSession(ctx, sessionID); err != nil {
			logger.Warn(ctx, "Failed to drop suspended user session", zap.Error(err))
		}
		return nil, domainerrors.ErrAccountSuspended
	}
	return user, nil
}

// ForgotPassword issues a reset code. Unknown emails succeed silently.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, rawEmail string) error {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return err
	}

	user, err := u.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Debug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	if err := u.resetCodes.Save(ctx, email, code, u.resetTTL); err != nil {
		return err
	}

	msg := entities.Notification{
		Email:   email,
		Subject: passwordResetSubject,
		Body: fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
			code, int(u.resetTTL.Minutes())),
	}
	if user.Mobile.Valid {
		pref, err := u.store.Preferences().GetByUserID(ctx, user.ID)
		if err == nil && pref.SMSNotifications {
			msg.Mobile = user.Mobile.String
		}
	}
	return u.delivery.send(ctx, msg, code)
}

// ResetPassword replaces the password when the reset code matches. The code
// is single use.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return err
	}
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	stored, err := u.resetCodes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return domainerrors.ErrInvalidCode
		}
		return err
	}
	if !codesMatch(stored, input.Token) {
		return domainerrors.ErrInvalidCode
	}

	user, err := u.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidCode
		}
		return err
	}
	if err := u.setPassword(ctx, user.ID, input.Password); err != nil {
		return err
	}
	if err := u.resetCodes.Delete(ctx, email); err != nil {
		logger.Warn(ctx, "Failed to delete used reset code", zap.Error(err))
	}
	return nil
}

// ChangePassword replaces the password after checking the current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	return u.setPassword(ctx, userID, input.NewPassword)
}

func (u *AuthUsecase) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = u.store.Users().Update(ctx, userID, entities.UserUpdate{PasswordHash: &hash})
	return err
}
