package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/crypto"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/metrics"
)

var generateVerificationCode = crypto.GenerateVerificationCode

// RegistrationUsecase runs the three-step email registration:
// init issues a code, verify checks it, complete creates the account.
type RegistrationUsecase struct {
	store    repositories.Store
	delivery codeDelivery
	metrics  *metrics.Metrics
	codeTTL  time.Duration
	now      func() time.Time
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	store repositories.Store,
	notifier Notifier,
	m *metrics.Metrics,
	codeTTL time.Duration,
	devFallback bool,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		store:    store,
		delivery: codeDelivery{notifier: notifier, devFallback: devFallback},
		metrics:  m,
		codeTTL:  codeTTL,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (u *RegistrationUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Init issues a fresh code for email, replacing any earlier one, and
// delivers it.
func (u *RegistrationUsecase) Init(ctx context.Context, rawEmail string) (err error) {
	defer func() { u.metrics.RegistrationStep(stageInit, err) }()

	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return err
	}

	_, err = u.store.Users().GetByEmail(ctx, email)
	if err == nil {
		return domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	now := u.now()
	pending := &entities.PendingRegistration{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(u.codeTTL),
		CreatedAt: now,
	}
	if err := u.store.PendingRegistrations().Upsert(ctx, pending); err != nil {
		return err
	}

	logger.Info(ctx, "Registration code issued", zap.String("email", email))
	return u.delivery.send(ctx, entities.Notification{
		Email:   email,
		Subject: registrationSubject,
		Body: fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
			code, int(u.codeTTL.Minutes())),
	}, code)
}

// Verify reports whether code is the live code for email. It never changes
// state.
func (u *RegistrationUsecase) Verify(ctx context.Context, rawEmail, code string) (ok bool, err error) {
	defer func() {
		if err == nil && !ok {
			u.metrics.RegistrationStep(stageVerify, domainerrors.ErrInvalidCode)
			return
		}
		u.metrics.RegistrationStep(stageVerify, err)
	}()

	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return false, err
	}

	pending, err := u.store.PendingRegistrations().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !codesMatch(pending.Code, code) {
		return false, nil
	}
	return !pending.IsExpired(u.now()), nil
}

// Complete turns the pending registration for email into a verified user
// with default preferences. The code is not checked again; an expired
// pending record is treated as absent.
func (u *RegistrationUsecase) Complete(ctx context.Context, input *entities.RegisterCompleteInput) (user *entities.User, err error) {
	defer func() { u.metrics.RegistrationStep(stageComplete, err) }()

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrPasswordMismatch
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	err = u.store.Do(ctx, func(ctx context.Context) error {
		pending, err := u.store.PendingRegistrations().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if pending.IsExpired(u.now()) {
			return domainerrors.ErrNotFound
		}

		user = &entities.User{
			Email:        email,
			PasswordHash: passwordHash,
			IsVerified:   true,
		}
		if err := u.store.Users().Create(ctx, user); err != nil {
			return err
		}
		if err := u.store.Preferences().Upsert(ctx, entities.DefaultPreference(user.ID)); err != nil {
			return err
		}
		return u.store.PendingRegistrations().Delete(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Registration completed", zap.String("user_id", user.ID.String()))
	return user, nil
}
