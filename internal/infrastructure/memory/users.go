package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/pkg/utils"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *entities.User) error {
	defer r.s.lock(ctx)()

	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerrors.ErrAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = utils.NewID()
	}
	now := r.s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.s.st.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.st.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	defer r.s.lock(ctx)()

	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.st.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	updated := cloneUser(u)
	update.Apply(updated)
	updated.UpdatedAt = r.s.now()
	r.s.st.users[id] = updated
	return cloneUser(updated), nil
}

func (r *userRepo) List(ctx context.Context, search string) ([]*entities.User, error) {
	defer r.s.lock(ctx)()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]*entities.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.DisplayName.String), search) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type pendingRepo struct {
	s *Store
}

func pendingKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *pendingRepo) Upsert(ctx context.Context, pending *entities.PendingRegistration) error {
	defer r.s.lock(ctx)()

	p := *pending
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	r.s.st.pending[pendingKey(p.Email)] = &p
	return nil
}

func (r *pendingRepo) GetByEmail(ctx context.Context, email string) (*entities.PendingRegistration, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.st.pending[pendingKey(email)]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *pendingRepo) Delete(ctx context.Context, email string) error {
	defer r.s.lock(ctx)()

	key := pendingKey(email)
	if _, ok := r.s.st.pending[key]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.s.st.pending, key)
	return nil
}

func (r *pendingRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for key, p := range r.s.st.pending {
		if p.ExpiresAt.Before(cutoff) {
			delete(r.s.st.pending, key)
			n++
		}
	}
	return n, nil
}
