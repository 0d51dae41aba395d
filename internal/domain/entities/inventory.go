package entities

import (
	"time"

	"github.com/google/uuid"
)

// InventoryChangeType tags a ledger entry
type InventoryChangeType string

const (
	InventoryChangeAdd    InventoryChangeType = "add"
	InventoryChangeRemove InventoryChangeType = "remove"
)

// ChangeTypeFor derives the ledger tag from a signed delta.
func ChangeTypeFor(delta int) InventoryChangeType {
	if delta > 0 {
		return InventoryChangeAdd
	}
	return InventoryChangeRemove
}

// InventoryLogEntry is an immutable record of one requested stock change.
// Quantity is the requested delta, not the clamped effective one.
type InventoryLogEntry struct {
	ID        uuid.UUID           `json:"id"`
	ProductID uuid.UUID           `json:"productId"`
	Quantity  int                 `json:"quantity"`
	Type      InventoryChangeType `json:"type"`
	Note      string              `json:"note"`
	CreatedAt time.Time           `json:"createdAt"`
}

// AdjustStockInput represents an admin stock adjustment
type AdjustStockInput struct {
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note" binding:"max=500"`
}
