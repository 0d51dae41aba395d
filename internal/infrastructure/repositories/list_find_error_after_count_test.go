package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"wardrobe.backend/internal/domain/entities"
)

func registerFindErrorAfterCount(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	cbName := "test:find_error_after_count:" + table
	queryCount := 0
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register(cbName, func(tx *gorm.DB) {
		if tx.Statement != nil && tx.Statement.Table == table {
			queryCount++
			if queryCount > 1 {
				tx.AddError(gorm.ErrInvalidDB)
			}
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Query().Remove(cbName) })
}

func TestProductRepository_List_FindErrorAfterCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	require.NoError(t, repo.Create(context.Background(), &entities.Product{Name: "Tee", Category: "tops"}))

	registerFindErrorAfterCount(t, db, "products")
	_, _, err := repo.List(context.Background(), entities.ProductFilter{Limit: 10})
	require.Error(t, err)
}
