package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
)

// ProfileUsecase manages a user's own profile, preferences and addresses
type ProfileUsecase struct {
	store repositories.Store
}

func NewProfileUsecase(store repositories.Store) *ProfileUsecase {
	return &ProfileUsecase{store: store}
}

func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.store.Users().GetByID(ctx, userID)
}

// UpdateProfile sets display name and mobile. Empty strings clear them.
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	var update entities.UserUpdate
	if input.DisplayName != nil {
		v := optionalString(*input.DisplayName)
		update.DisplayName = &v
	}
	if input.Mobile != nil {
		v := optionalString(*input.Mobile)
		update.Mobile = &v
	}
	return u.store.Users().Update(ctx, userID, update)
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}

// GetPreferences returns stored preferences or the defaults when none were
// saved yet.
func (u *ProfileUsecase) GetPreferences(ctx context.Context, userID uuid.UUID) (*entities.UserPreference, error) {
	pref, err := u.store.Preferences().GetByUserID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		if _, err := u.store.Users().GetByID(ctx, userID); err != nil {
			return nil, err
		}
		return entities.DefaultPreference(userID), nil
	}
	return pref, err
}

func (u *ProfileUsecase) UpdatePreferences(ctx context.Context, userID uuid.UUID, input *entities.UpdatePreferenceInput) (*entities.UserPreference, error) {
	if input.Currency != nil {
		c := strings.ToUpper(*input.Currency)
		input.Currency = &c
	}

	var pref *entities.UserPreference
	err := u.store.Do(ctx, func(ctx context.Context) error {
		var err error
		pref, err = u.GetPreferences(ctx, userID)
		if err != nil {
			return err
		}
		input.Apply(pref)
		return u.store.Preferences().Upsert(ctx, pref)
	})
	if err != nil {
		return nil, err
	}
	return pref, nil
}

func (u *ProfileUsecase) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entities.UserAddress, error) {
	return u.store.Addresses().ListByUserID(ctx, userID)
}

// CreateAddress adds an address. A user's first address becomes primary.
func (u *ProfileUsecase) CreateAddress(ctx context.Context, userID uuid.UUID, input *entities.AddressInput) (*entities.UserAddress, error) {
	address := &entities.UserAddress{
		UserID:     userID,
		Label:      input.Label,
		Recipient:  input.Recipient,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    strings.ToUpper(input.Country),
		Phone:      input.Phone,
		IsPrimary:  input.IsPrimary,
	}
	if err := u.store.Addresses().Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress changes one of the user's addresses. Addresses of other
// users are reported as not found.
func (u *ProfileUsecase) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, update *entities.AddressUpdate) (*entities.UserAddress, error) {
	if update.Country != nil {
		c := strings.ToUpper(*update.Country)
		update.Country = &c
	}

	var updated *entities.UserAddress
	err := u.store.Do(ctx, func(ctx context.Context) error {
		if err := u.ownAddress(ctx, userID, addressID); err != nil {
			return err
		}
		var err error
		updated, err = u.store.Addresses().Update(ctx, addressID, *update)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *ProfileUsecase) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return u.store.Do(ctx, func(ctx context.Context) error {
		if err := u.ownAddress(ctx, userID, addressID); err != nil {
			return err
		}
		return u.store.Addresses().Delete(ctx, addressID)
	})
}

func (u *ProfileUsecase) ownAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := u.store.Addresses().GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		return domainerrors.ErrNotFound
	}
	return nil
}
