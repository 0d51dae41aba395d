package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope. Repository
	// calls made with the callback's context join the transaction; if fn
	// returns an error every write made through that context is rolled back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store groups every repository behind one swappable backend
type Store interface {
	UnitOfWork
	Users() UserRepository
	PendingRegistrations() PendingRegistrationRepository
	Products() ProductRepository
	InventoryLogs() InventoryLogRepository
	Preferences() PreferenceRepository
	Addresses() AddressRepository
	Close() error
}
