// Package memory is an in-process implementation of repositories.Store.
// All access is serialised behind one mutex.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
	domainRepos "wardrobe.backend/internal/domain/repositories"
)

type lockKey struct{}

type state struct {
	users     map[uuid.UUID]*entities.User
	pending   map[string]*entities.PendingRegistration
	products  map[uuid.UUID]*entities.Product
	logs      []*entities.InventoryLogEntry
	prefs     map[uuid.UUID]*entities.UserPreference
	addresses map[uuid.UUID]*entities.UserAddress
}

func newState() *state {
	return &state{
		users:     make(map[uuid.UUID]*entities.User),
		pending:   make(map[string]*entities.PendingRegistration),
		products:  make(map[uuid.UUID]*entities.Product),
		prefs:     make(map[uuid.UUID]*entities.UserPreference),
		addresses: make(map[uuid.UUID]*entities.UserAddress),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range s.pending {
		p := *v
		c.pending[k] = &p
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	c.logs = append(c.logs, s.logs...)
	for k, v := range s.prefs {
		c.prefs[k] = clonePreference(v)
	}
	for k, v := range s.addresses {
		a := *v
		c.addresses[k] = &a
	}
	return c
}

// Store keeps every aggregate in maps guarded by a single mutex.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time

	users     *userRepo
	pending   *pendingRepo
	products  *productRepo
	logs      *inventoryLogRepo
	prefs     *preferenceRepo
	addresses *addressRepo
}

var _ domainRepos.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{st: newState(), now: time.Now}
	s.users = &userRepo{s: s}
	s.pending = &pendingRepo{s: s}
	s.products = &productRepo{s: s}
	s.logs = &inventoryLogRepo{s: s}
	s.prefs = &preferenceRepo{s: s}
	s.addresses = &addressRepo{s: s}
	return s
}

// SetClock overrides the timestamp source
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// lock acquires the store mutex unless ctx already runs inside Do on this store.
func (s *Store) lock(ctx context.Context) func() {
	if held, ok := ctx.Value(lockKey{}).(*Store); ok && held == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Do runs fn while holding the store lock. If fn fails, every write made
// through its context is discarded.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, ok := ctx.Value(lockKey{}).(*Store); ok && held == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st.clone()
	if err := fn(context.WithValue(ctx, lockKey{}, s)); err != nil {
		s.st = saved
		return err
	}
	return nil
}

func (s *Store) Users() domainRepos.UserRepository                               { return s.users }
func (s *Store) PendingRegistrations() domainRepos.PendingRegistrationRepository { return s.pending }
func (s *Store) Products() domainRepos.ProductRepository                         { return s.products }
func (s *Store) InventoryLogs() domainRepos.InventoryLogRepository               { return s.logs }
func (s *Store) Preferences() domainRepos.PreferenceRepository                   { return s.prefs }
func (s *Store) Addresses() domainRepos.AddressRepository                        { return s.addresses }

// Close is a no-op
func (s *Store) Close() error { return nil }

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

func clonePreference(p *entities.UserPreference) *entities.UserPreference {
	c := *p
	c.PreferredCategories = append([]string{}, p.PreferredCategories...)
	return &c
}
