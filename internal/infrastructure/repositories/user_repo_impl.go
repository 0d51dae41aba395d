package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/infrastructure/models"
	"wardrobe.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.NewID()
	}
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrAlreadyExists
	}

	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		DisplayName:  user.DisplayName,
		Mobile:       user.Mobile,
		IsVerified:   user.IsVerified,
		IsAdmin:      user.IsAdmin,
		IsSuspended:  user.IsSuspended,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email, ignoring case
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("LOWER(email) = LOWER(?)", email).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return userToEntity(&m), nil
}

// Update applies the non-nil fields of update
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.PasswordHash != nil {
		updates["password_hash"] = *update.PasswordHash
	}
	if update.DisplayName != nil {
		updates["display_name"] = *update.DisplayName
	}
	if update.Mobile != nil {
		updates["mobile"] = *update.Mobile
	}
	if update.IsVerified != nil {
		updates["is_verified"] = *update.IsVerified
	}
	if update.IsAdmin != nil {
		updates["is_admin"] = *update.IsAdmin
	}
	if update.IsSuspended != nil {
		updates["is_suspended"] = *update.IsSuspended
	}

	db := GetDB(ctx, r.db)
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// List lists users oldest first with an optional email/display name filter
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).Order("created_at ASC").Order("email ASC")

	if search = strings.ToLower(strings.TrimSpace(search)); search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Mobile:       m.Mobile,
		IsVerified:   m.IsVerified,
		IsAdmin:      m.IsAdmin,
		IsSuspended:  m.IsSuspended,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PendingRegistrationRepository stores unconfirmed sign-ups keyed by lowercased email
type PendingRegistrationRepository struct {
	db *gorm.DB
}

func NewPendingRegistrationRepository(db *gorm.DB) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{db: db}
}

// Upsert replaces any earlier pending record for the same email
func (r *PendingRegistrationRepository) Upsert(ctx context.Context, pending *entities.PendingRegistration) error {
	m := &models.PendingRegistration{
		Email:     strings.ToLower(strings.TrimSpace(pending.Email)),
		Code:      pending.Code,
		ExpiresAt: pending.ExpiresAt,
		CreatedAt: pending.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(m).Error
}

func (r *PendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (*entities.PendingRegistration, error) {
	var m models.PendingRegistration
	err := GetDB(ctx, r.db).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entities.PendingRegistration{
		Email:     m.Email,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *PendingRegistrationRepository) Delete(ctx context.Context, email string) error {
	result := GetDB(ctx, r.db).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Delete(&models.PendingRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PendingRegistrationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Where("expires_at < ?", cutoff).Delete(&models.PendingRegistration{})
	return result.RowsAffected, result.Error
}
