package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wardrobe.backend/internal/domain/entities"
	"wardrobe.backend/internal/infrastructure/models"
	"wardrobe.backend/pkg/utils"
)

// PreferenceRepository stores one preference row per user
type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserPreference, error) {
	var m models.UserPreference
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return preferenceToEntity(&m), nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *entities.UserPreference) error {
	pref.UpdatedAt = time.Now()
	categories := pref.PreferredCategories
	if categories == nil {
		categories = []string{}
	}
	m := &models.UserPreference{
		UserID:              pref.UserID,
		Newsletter:          pref.Newsletter,
		SMSNotifications:    pref.SMSNotifications,
		PreferredSize:       pref.PreferredSize,
		PreferredCategories: categories,
		Currency:            pref.Currency,
		UpdatedAt:           pref.UpdatedAt,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *PreferenceRepository) List(ctx context.Context) ([]*entities.UserPreference, error) {
	var rows []models.UserPreference
	if err := GetDB(ctx, r.db).Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.UserPreference, 0, len(rows))
	for i := range rows {
		out = append(out, preferenceToEntity(&rows[i]))
	}
	return out, nil
}

func preferenceToEntity(m *models.UserPreference) *entities.UserPreference {
	categories := m.PreferredCategories
	if categories == nil {
		categories = []string{}
	}
	return &entities.UserPreference{
		UserID:              m.UserID,
		Newsletter:          m.Newsletter,
		SMSNotifications:    m.SMSNotifications,
		PreferredSize:       m.PreferredSize,
		PreferredCategories: categories,
		Currency:            m.Currency,
		UpdatedAt:           m.UpdatedAt,
	}
}

// AddressRepository keeps at most one primary address per user. Every write
// runs in a transaction holding the owning user's row lock.
type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, address *entities.UserAddress) error {
	if address.ID == uuid.Nil {
		address.ID = utils.NewID()
	}
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockUser(tx, address.UserID); err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&models.UserAddress{}).Where("user_id = ?", address.UserID).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			address.IsPrimary = true
		}
		if address.IsPrimary {
			if err := clearPrimary(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}

		m := addressToModel(address)
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		address.CreatedAt = m.CreatedAt
		address.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *AddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.UserAddress, error) {
	var m models.UserAddress
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return addressToEntity(&m), nil
}

func (r *AddressRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAddress, error) {
	return r.list(GetDB(ctx, r.db).Where("user_id = ?", userID))
}

func (r *AddressRepository) List(ctx context.Context) ([]*entities.UserAddress, error) {
	return r.list(GetDB(ctx, r.db))
}

func (r *AddressRepository) list(query *gorm.DB) ([]*entities.UserAddress, error) {
	var rows []models.UserAddress
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.UserAddress, 0, len(rows))
	for i := range rows {
		out = append(out, addressToEntity(&rows[i]))
	}
	return out, nil
}

func (r *AddressRepository) Update(ctx context.Context, id uuid.UUID, update entities.AddressUpdate) (*entities.UserAddress, error) {
	var out *entities.UserAddress
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		m, err := lockedAddress(tx, id)
		if err != nil {
			return err
		}
		current := addressToEntity(m)
		wasPrimary := current.IsPrimary
		update.Apply(current)

		if current.IsPrimary {
			if err := clearPrimary(tx, current.UserID, id); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"label":       current.Label,
			"recipient":   current.Recipient,
			"line1":       current.Line1,
			"line2":       current.Line2,
			"city":        current.City,
			"postal_code": current.PostalCode,
			"country":     current.Country,
			"phone":       current.Phone,
			"is_primary":  current.IsPrimary,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&models.UserAddress{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if wasPrimary && !current.IsPrimary {
			if err := promoteOldest(tx, current.UserID, id); err != nil {
				return err
			}
		}

		if err := tx.Where("id = ?", id).First(m).Error; err != nil {
			return err
		}
		out = addressToEntity(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		m, err := lockedAddress(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.UserAddress{}, "id = ?", id).Error; err != nil {
			return err
		}
		if m.IsPrimary {
			return promoteOldest(tx, m.UserID, uuid.Nil)
		}
		return nil
	})
}

// lockUser takes the user's row lock until the transaction ends. A no-op
// UPDATE is used because sqlite ignores SELECT ... FOR UPDATE.
func lockUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("id", gorm.Expr("id")).Error
}

// lockedAddress loads an address, locks its owner and reloads it so the
// caller sees the state as of the lock.
func lockedAddress(tx *gorm.DB, id uuid.UUID) (*models.UserAddress, error) {
	var m models.UserAddress
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	if err := lockUser(tx, m.UserID); err != nil {
		return nil, err
	}
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func clearPrimary(tx *gorm.DB, userID, except uuid.UUID) error {
	return tx.Model(&models.UserAddress{}).
		Where("user_id = ? AND id <> ? AND is_primary = ?", userID, except, true).
		Updates(map[string]interface{}{"is_primary": false, "updated_at": time.Now()}).Error
}

// promoteOldest marks the user's oldest address other than skip as primary.
// If skip is the only address it stays primary.
func promoteOldest(tx *gorm.DB, userID, skip uuid.UUID) error {
	var next models.UserAddress
	err := tx.Where("user_id = ? AND id <> ?", userID, skip).
		Order("created_at ASC").Order("id ASC").
		First(&next).Error
	switch {
	case err == nil:
		return tx.Model(&models.UserAddress{}).Where("id = ?", next.ID).
			Updates(map[string]interface{}{"is_primary": true, "updated_at": time.Now()}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if skip == uuid.Nil {
			return nil
		}
		return tx.Model(&models.UserAddress{}).Where("id = ?", skip).Update("is_primary", true).Error
	default:
		return err
	}
}

func addressToModel(a *entities.UserAddress) *models.UserAddress {
	return &models.UserAddress{
		ID:         a.ID,
		UserID:     a.UserID,
		Label:      a.Label,
		Recipient:  a.Recipient,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		IsPrimary:  a.IsPrimary,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func addressToEntity(m *models.UserAddress) *entities.UserAddress {
	return &entities.UserAddress{
		ID:         m.ID,
		UserID:     m.UserID,
		Label:      m.Label,
		Recipient:  m.Recipient,
		Line1:      m.Line1,
		Line2:      m.Line2,
		City:       m.City,
		PostalCode: m.PostalCode,
		Country:    m.Country,
		Phone:      m.Phone,
		IsPrimary:  m.IsPrimary,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
