package repositories

import (
	"context"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
)

// ProductRepository defines catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	List(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error)
	Update(ctx context.Context, id uuid.UUID, update entities.ProductUpdate) (*entities.Product, error)
	// AddStock applies delta to the stored level in one step, never going below zero.
	AddStock(ctx context.Context, id uuid.UUID, delta int) (*entities.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryLogRepository is the append-only stock ledger
type InventoryLogRepository interface {
	Append(ctx context.Context, entry *entities.InventoryLogEntry) error
	// List returns entries newest first, optionally for a single product.
	List(ctx context.Context, productID *uuid.UUID) ([]*entities.InventoryLogEntry, error)
}
