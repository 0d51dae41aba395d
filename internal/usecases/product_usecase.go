package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/utils"
)

// ProductUsecase serves the catalog and admin product management
type ProductUsecase struct {
	store repositories.Store
}

func NewProductUsecase(store repositories.Store) *ProductUsecase {
	return &ProductUsecase{store: store}
}

// List returns one page of the catalog
func (u *ProductUsecase) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Product, utils.PaginationMeta, error) {
	products, total, err := u.store.Products().List(ctx, entities.ProductFilter{
		Limit:  pagination.Limit,
		Offset: pagination.Offset(),
	})
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return products, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

func (u *ProductUsecase) Featured(ctx context.Context) ([]*entities.Product, error) {
	products, _, err := u.store.Products().List(ctx, entities.ProductFilter{FeaturedOnly: true})
	return products, err
}

func (u *ProductUsecase) ByCategory(ctx context.Context, category string) ([]*entities.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	products, _, err := u.store.Products().List(ctx, entities.ProductFilter{Category: category})
	return products, err
}

func (u *ProductUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return u.store.Products().GetByID(ctx, id)
}

// Create adds a product. Opening stock is recorded in the ledger.
func (u *ProductUsecase) Create(ctx context.Context, input *entities.CreateProductInput) (*entities.Product, error) {
	product := &entities.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		ImageURL:    input.ImageURL,
		IsFeatured:  input.IsFeatured,
		Stock:       input.Stock,
		MinStock:    null.IntFromPtr(input.MinStock),
	}

	err := u.store.Do(ctx, func(ctx context.Context) error {
		if err := u.store.Products().Create(ctx, product); err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		return u.store.InventoryLogs().Append(ctx, &entities.InventoryLogEntry{
			ProductID: product.ID,
			Quantity:  product.Stock,
			Type:      entities.InventoryChangeAdd,
			Note:      "opening stock",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product created", zap.String("product_id", product.ID.String()))
	return product, nil
}

// Update changes product details. Stock only moves through the inventory
// ledger.
func (u *ProductUsecase) Update(ctx context.Context, id uuid.UUID, update *entities.ProductUpdate) (*entities.Product, error) {
	if update.Category != nil {
		c := strings.ToLower(strings.TrimSpace(*update.Category))
		update.Category = &c
	}
	return u.store.Products().Update(ctx, id, *update)
}

func (u *ProductUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.store.Products().Delete(ctx, id)
}
