package usecases

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
)

// AdminUsecase handles user management for administrators
type AdminUsecase struct {
	store repositories.Store
}

func NewAdminUsecase(store repositories.Store) *AdminUsecase {
	return &AdminUsecase{store: store}
}

// ListUsers returns users whose email or display name contains search
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.store.Users().List(ctx, strings.TrimSpace(search))
}

// ToggleSuspension flips the suspended flag. Admins cannot suspend themselves.
func (u *AdminUsecase) ToggleSuspension(ctx context.Context, actorID, userID uuid.UUID) (*entities.User, error) {
	return u.toggle(ctx, actorID, userID, "is_suspended", func(user *entities.User) entities.UserUpdate {
		v := !user.IsSuspended
		return entities.UserUpdate{IsSuspended: &v}
	})
}

// ToggleAdmin flips the admin flag. Admins cannot demote themselves.
func (u *AdminUsecase) ToggleAdmin(ctx context.Context, actorID, userID uuid.UUID) (*entities.User, error) {
	return u.toggle(ctx, actorID, userID, "is_admin", func(user *entities.User) entities.UserUpdate {
		v := !user.IsAdmin
		return entities.UserUpdate{IsAdmin: &v}
	})
}

func (u *AdminUsecase) toggle(
	ctx context.Context,
	actorID, userID uuid.UUID,
	field string,
	flip func(*entities.User) entities.UserUpdate,
) (*entities.User, error) {
	if actorID == userID {
		return nil, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeForbidden, "cannot change your own account flags", domainerrors.ErrForbidden)
	}

	var updated *entities.User
	err := u.store.Do(ctx, func(ctx context.Context) error {
		user, err := u.store.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		updated, err = u.store.Users().Update(ctx, userID, flip(user))
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User flag toggled",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", userID.String()),
		zap.String("field", field),
	)
	return updated, nil
}
