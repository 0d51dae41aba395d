package usecases

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/metrics"
)

// InventoryUsecase keeps product stock and its ledger in step
type InventoryUsecase struct {
	store           repositories.Store
	metrics         *metrics.Metrics
	defaultMinStock int
}

// NewInventoryUsecase creates a new inventory usecase. A non-positive
// defaultMinStock falls back to entities.DefaultMinStock.
func NewInventoryUsecase(store repositories.Store, m *metrics.Metrics, defaultMinStock int) *InventoryUsecase {
	if defaultMinStock <= 0 {
		defaultMinStock = entities.DefaultMinStock
	}
	return &InventoryUsecase{
		store:           store,
		metrics:         m,
		defaultMinStock: defaultMinStock,
	}
}

// AdjustStock applies a signed delta to a product's stock, clamping at zero,
// and records the requested delta in the ledger. Both writes commit together.
func (u *InventoryUsecase) AdjustStock(ctx context.Context, productID uuid.UUID, input *entities.AdjustStockInput) (*entities.Product, error) {
	if input.Quantity == 0 {
		return nil, domainerrors.NewError("quantity must not be zero", domainerrors.ErrInvalidInput)
	}
	changeType := entities.ChangeTypeFor(input.Quantity)

	var updated *entities.Product
	err := u.store.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = u.store.Products().AddStock(ctx, productID, input.Quantity)
		if err != nil {
			return err
		}

		return u.store.InventoryLogs().Append(ctx, &entities.InventoryLogEntry{
			ProductID: productID,
			Quantity:  input.Quantity,
			Type:      changeType,
			Note:      input.Note,
		})
	})
	if err != nil {
		return nil, err
	}

	u.metrics.StockAdjusted(string(changeType))
	logger.Info(ctx, "Stock adjusted",
		zap.String("product_id", productID.String()),
		zap.Int("delta", input.Quantity),
		zap.Int("stock", updated.Stock),
	)
	return updated, nil
}

// GetLowStockProducts returns products at or below a threshold, lowest stock
// first. Without an explicit threshold each product's own minimum applies.
func (u *InventoryUsecase) GetLowStockProducts(ctx context.Context, threshold *int) ([]*entities.Product, error) {
	products, _, err := u.store.Products().List(ctx, entities.ProductFilter{})
	if err != nil {
		return nil, err
	}

	low := make([]*entities.Product, 0)
	for _, p := range products {
		limit := p.LowStockThreshold(u.defaultMinStock)
		if threshold != nil {
			limit = *threshold
		}
		if p.Stock <= limit {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	return low, nil
}

// GetLogs returns ledger entries newest first, optionally for one product
func (u *InventoryUsecase) GetLogs(ctx context.Context, productID *uuid.UUID) ([]*entities.InventoryLogEntry, error) {
	return u.store.InventoryLogs().List(ctx, productID)
}
