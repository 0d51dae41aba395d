package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
)

var defaultCatalog = []entities.CreateProductInput{
	{Name: "Classic White Tee", Description: "Heavyweight cotton crew neck", Price: 1999, Category: "tops", IsFeatured: true, Stock: 40, MinStock: null.IntFrom(10).Ptr()},
	{Name: "Striped Breton Shirt", Description: "Long sleeve boat neck", Price: 3499, Category: "tops", Stock: 18},
	{Name: "Slim Selvedge Jeans", Description: "Raw indigo denim", Price: 8900, Category: "bottoms", IsFeatured: true, Stock: 12, MinStock: null.IntFrom(4).Ptr()},
	{Name: "Pleated Chinos", Description: "Relaxed fit twill", Price: 5900, Category: "bottoms", Stock: 3},
	{Name: "Wool Overcoat", Description: "Single breasted, knee length", Price: 24900, Category: "outerwear", IsFeatured: true, Stock: 5, MinStock: null.IntFrom(2).Ptr()},
	{Name: "Quilted Vest", Description: "Lightweight insulated layer", Price: 7400, Category: "outerwear", Stock: 0},
	{Name: "Leather Belt", Description: "Full grain, brass buckle", Price: 3900, Category: "accessories", Stock: 25},
	{Name: "Merino Beanie", Description: "Ribbed knit", Price: 2500, Category: "accessories", Stock: 2},
}

// SeedCatalog fills an empty catalog with starter products and returns how
// many were added. A catalog that already has products is left alone.
func SeedCatalog(ctx context.Context, products *ProductUsecase) (int, error) {
	_, total, err := products.store.Products().List(ctx, entities.ProductFilter{Limit: 1})
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	for i := range defaultCatalog {
		input := defaultCatalog[i]
		if _, err := products.Create(ctx, &input); err != nil {
			return i, err
		}
	}
	logger.Info(ctx, "Seeded catalog", zap.Int("products", len(defaultCatalog)))
	return len(defaultCatalog), nil
}

// BootstrapAdmin makes sure an admin account exists for email. An existing
// account is promoted; otherwise one is created with the given bcrypt hash.
func BootstrapAdmin(ctx context.Context, store repositories.Store, email, passwordHash string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	var admin *entities.User
	err := store.Do(ctx, func(ctx context.Context) error {
		existing, err := store.Users().GetByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.IsAdmin {
				admin = existing
				return nil
			}
			isAdmin := true
			admin, err = store.Users().Update(ctx, existing.ID, entities.UserUpdate{IsAdmin: &isAdmin})
			return err
		case errors.Is(err, domainerrors.ErrNotFound):
			admin = &entities.User{
				Email:        email,
				PasswordHash: passwordHash,
				IsVerified:   true,
				IsAdmin:      true,
			}
			if err := store.Users().Create(ctx, admin); err != nil {
				return err
			}
			return store.Preferences().Upsert(ctx, entities.DefaultPreference(admin.ID))
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}
