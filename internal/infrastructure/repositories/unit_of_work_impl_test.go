package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"wardrobe.backend/internal/domain/entities"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}
	products := NewProductRepository(db)
	ctx := context.Background()

	// commit path
	err := u.Do(ctx, func(txCtx context.Context) error {
		return products.Create(txCtx, &entities.Product{Name: "Tee", Category: "tops"})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("products").Count(&count).Error)
	require.Equal(t, int64(1), count)

	// rollback path
	err = u.Do(ctx, func(txCtx context.Context) error {
		if err := products.Create(txCtx, &entities.Product{Name: "Cap", Category: "accessories"}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("products").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoJoinsOuterTx(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}
	products := NewProductRepository(db)

	err := u.Do(context.Background(), func(outer context.Context) error {
		if err := u.Do(outer, func(inner context.Context) error {
			require.Equal(t, GetDB(outer, db), GetDB(inner, db))
			return products.Create(inner, &entities.Product{Name: "Tee", Category: "tops"})
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Table("products").Count(&count).Error)
	require.Zero(t, count)
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error {
		_ = ctx
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}
