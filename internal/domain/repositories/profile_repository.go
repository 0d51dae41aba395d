package repositories

import (
	"context"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
)

// PreferenceRepository stores one preference record per user
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserPreference, error)
	Upsert(ctx context.Context, pref *entities.UserPreference) error
	List(ctx context.Context) ([]*entities.UserPreference, error)
}

// AddressRepository stores user addresses. Implementations keep at most one
// primary address per user: writing a primary address clears the flag on the
// user's other addresses in the same operation.
type AddressRepository interface {
	Create(ctx context.Context, address *entities.UserAddress) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.UserAddress, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAddress, error)
	Update(ctx context.Context, id uuid.UUID, update entities.AddressUpdate) (*entities.UserAddress, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.UserAddress, error)
}
