package repositories

import (
	"context"

	"gorm.io/gorm"
	domainRepos "wardrobe.backend/internal/domain/repositories"
)

// Store is the SQL-backed repositories.Store shared by the postgres and sqlite drivers.
type Store struct {
	db        *gorm.DB
	uow       domainRepos.UnitOfWork
	users     *UserRepository
	pending   *PendingRegistrationRepository
	products  *ProductRepository
	logs      *InventoryLogRepository
	prefs     *PreferenceRepository
	addresses *AddressRepository
}

var _ domainRepos.Store = (*Store)(nil)

// NewStore wires every repository to db. The schema must already be migrated.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		uow:       NewUnitOfWork(db),
		users:     NewUserRepository(db),
		pending:   NewPendingRegistrationRepository(db),
		products:  NewProductRepository(db),
		logs:      NewInventoryLogRepository(db),
		prefs:     NewPreferenceRepository(db),
		addresses: NewAddressRepository(db),
	}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.uow.Do(ctx, fn)
}

func (s *Store) Users() domainRepos.UserRepository { return s.users }

func (s *Store) PendingRegistrations() domainRepos.PendingRegistrationRepository { return s.pending }

func (s *Store) Products() domainRepos.ProductRepository { return s.products }

func (s *Store) InventoryLogs() domainRepos.InventoryLogRepository { return s.logs }

func (s *Store) Preferences() domainRepos.PreferenceRepository { return s.prefs }

func (s *Store) Addresses() domainRepos.AddressRepository { return s.addresses }

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
