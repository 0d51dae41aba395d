package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
}

// PendingRegistrationRepository stores unconfirmed registrations keyed by email
type PendingRegistrationRepository interface {
	// Upsert replaces any pending record for the same email.
	Upsert(ctx context.Context, pending *entities.PendingRegistration) error
	GetByEmail(ctx context.Context, email string) (*entities.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
	// DeleteExpired removes records whose expiry is before the cutoff and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
