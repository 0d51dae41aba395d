package backup

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainRepos "wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
)

type pendingKey struct{}

// Snapshotter is satisfied by *Writer
type Snapshotter interface {
	Write(ctx context.Context) error
}

// Store wraps another store and takes a snapshot after every successful
// user, preference or address mutation. Mutations inside Do are coalesced
// into a single snapshot taken after the unit of work commits. Snapshot
// failures are logged and never fail the mutation.
type Store struct {
	domainRepos.Store
	snap Snapshotter
}

var _ domainRepos.Store = (*Store)(nil)

func NewStore(inner domainRepos.Store, snap Snapshotter) *Store {
	return &Store{Store: inner, snap: snap}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(pendingKey{}).(*atomic.Bool); nested {
		return s.Store.Do(ctx, fn)
	}

	dirty := new(atomic.Bool)
	err := s.Store.Do(context.WithValue(ctx, pendingKey{}, dirty), fn)
	if err == nil && dirty.Load() {
		s.write(ctx)
	}
	return err
}

// mutated records a successful mutation made with ctx.
func (s *Store) mutated(ctx context.Context) {
	if dirty, ok := ctx.Value(pendingKey{}).(*atomic.Bool); ok {
		dirty.Store(true)
		return
	}
	s.write(ctx)
}

func (s *Store) write(ctx context.Context) {
	if err := s.snap.Write(context.WithoutCancel(ctx)); err != nil {
		logger.Warn(ctx, "Snapshot after mutation failed", zap.Error(err))
	}
}

func (s *Store) Users() domainRepos.UserRepository {
	return &userRepo{UserRepository: s.Store.Users(), s: s}
}

func (s *Store) Preferences() domainRepos.PreferenceRepository {
	return &preferenceRepo{PreferenceRepository: s.Store.Preferences(), s: s}
}

func (s *Store) Addresses() domainRepos.AddressRepository {
	return &addressRepo{AddressRepository: s.Store.Addresses(), s: s}
}

type userRepo struct {
	domainRepos.UserRepository
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *entities.User) error {
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	r.s.mutated(ctx)
	return nil
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error) {
	u, err := r.UserRepository.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.s.mutated(ctx)
	return u, nil
}

type preferenceRepo struct {
	domainRepos.PreferenceRepository
	s *Store
}

func (r *preferenceRepo) Upsert(ctx context.Context, pref *entities.UserPreference) error {
	if err := r.PreferenceRepository.Upsert(ctx, pref); err != nil {
		return err
	}
	r.s.mutated(ctx)
	return nil
}

type addressRepo struct {
	domainRepos.AddressRepository
	s *Store
}

func (r *addressRepo) Create(ctx context.Context, address *entities.UserAddress) error {
	if err := r.AddressRepository.Create(ctx, address); err != nil {
		return err
	}
	r.s.mutated(ctx)
	return nil
}

func (r *addressRepo) Update(ctx context.Context, id uuid.UUID, update entities.AddressUpdate) (*entities.UserAddress, error) {
	a, err := r.AddressRepository.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.s.mutated(ctx)
	return a, nil
}

func (r *addressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.AddressRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.s.mutated(ctx)
	return nil
}
