package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/pkg/utils"
)

type preferenceRepo struct {
	s *Store
}

func (r *preferenceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserPreference, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.st.prefs[userID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return clonePreference(p), nil
}

func (r *preferenceRepo) Upsert(ctx context.Context, pref *entities.UserPreference) error {
	defer r.s.lock(ctx)()

	pref.UpdatedAt = r.s.now()
	r.s.st.prefs[pref.UserID] = clonePreference(pref)
	return nil
}

func (r *preferenceRepo) List(ctx context.Context) ([]*entities.UserPreference, error) {
	defer r.s.lock(ctx)()

	out := make([]*entities.UserPreference, 0, len(r.s.st.prefs))
	for _, p := range r.s.st.prefs {
		out = append(out, clonePreference(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out, nil
}

type addressRepo struct {
	s *Store
}

// userAddresses returns the stored addresses of one user, oldest first.
func (r *addressRepo) userAddresses(userID uuid.UUID) []*entities.UserAddress {
	var out []*entities.UserAddress
	for _, a := range r.s.st.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortAddresses(out)
	return out
}

func (r *addressRepo) clearPrimary(userID, except uuid.UUID) {
	for id, a := range r.s.st.addresses {
		if a.UserID == userID && id != except && a.IsPrimary {
			c := *a
			c.IsPrimary = false
			c.UpdatedAt = r.s.now()
			r.s.st.addresses[id] = &c
		}
	}
}

func (r *addressRepo) Create(ctx context.Context, address *entities.UserAddress) error {
	defer r.s.lock(ctx)()

	if address.ID == uuid.Nil {
		address.ID = utils.NewID()
	}
	if len(r.userAddresses(address.UserID)) == 0 {
		address.IsPrimary = true
	}
	now := r.s.now()
	address.CreatedAt = now
	address.UpdatedAt = now
	if address.IsPrimary {
		r.clearPrimary(address.UserID, address.ID)
	}
	a := *address
	r.s.st.addresses[a.ID] = &a
	return nil
}

func (r *addressRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.UserAddress, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.st.addresses[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *addressRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAddress, error) {
	defer r.s.lock(ctx)()

	stored := r.userAddresses(userID)
	out := make([]*entities.UserAddress, 0, len(stored))
	for _, a := range stored {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *addressRepo) Update(ctx context.Context, id uuid.UUID, update entities.AddressUpdate) (*entities.UserAddress, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.st.addresses[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	wasPrimary := a.IsPrimary
	updated := *a
	update.Apply(&updated)
	updated.UpdatedAt = r.s.now()
	r.s.st.addresses[id] = &updated

	switch {
	case updated.IsPrimary:
		r.clearPrimary(updated.UserID, id)
	case wasPrimary:
		r.promoteOldest(updated.UserID, id)
	}
	c := *r.s.st.addresses[id]
	return &c, nil
}

func (r *addressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	a, ok := r.s.st.addresses[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.s.st.addresses, id)
	if a.IsPrimary {
		r.promoteOldest(a.UserID, uuid.Nil)
	}
	return nil
}

// promoteOldest marks the user's oldest address other than skip as primary.
// With nothing else to promote, skip keeps the flag.
func (r *addressRepo) promoteOldest(userID, skip uuid.UUID) {
	for _, a := range r.userAddresses(userID) {
		if a.ID == skip {
			continue
		}
		c := *a
		c.IsPrimary = true
		c.UpdatedAt = r.s.now()
		r.s.st.addresses[c.ID] = &c
		return
	}
	if s, ok := r.s.st.addresses[skip]; ok {
		s.IsPrimary = true
	}
}

func (r *addressRepo) List(ctx context.Context) ([]*entities.UserAddress, error) {
	defer r.s.lock(ctx)()

	out := make([]*entities.UserAddress, 0, len(r.s.st.addresses))
	for _, a := range r.s.st.addresses {
		c := *a
		out = append(out, &c)
	}
	sortAddresses(out)
	return out, nil
}

func sortAddresses(list []*entities.UserAddress) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID.String() < list[j].ID.String()
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
