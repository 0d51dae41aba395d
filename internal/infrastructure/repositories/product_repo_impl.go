package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/infrastructure/models"
	"wardrobe.backend/pkg/utils"
)

// ProductRepository implements catalog data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	if product.ID == uuid.Nil {
		product.ID = utils.NewID()
	}
	m := productToModel(product)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return productToEntity(&m), nil
}

// List returns one page of matching products and the total match count
func (r *ProductRepository) List(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			q = q.Where("LOWER(category) = LOWER(?)", filter.Category)
		}
		if filter.FeaturedOnly {
			q = q.Where("is_featured = ?", true)
		}
		return q
	}

	db := GetDB(ctx, r.db)
	var total int64
	if err := db.Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Scopes(scope).Order("created_at ASC").Order("name ASC")
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(rows))
	for i := range rows {
		products = append(products, productToEntity(&rows[i]))
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, update entities.ProductUpdate) (*entities.Product, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Price != nil {
		updates["price"] = *update.Price
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.ImageURL != nil {
		updates["image_url"] = *update.ImageURL
	}
	if update.IsFeatured != nil {
		updates["is_featured"] = *update.IsFeatured
	}
	if update.MinStock != nil {
		updates["min_stock"] = *update.MinStock
	}
	return r.apply(ctx, id, updates)
}

// AddStock adjusts the stock level in a single UPDATE, flooring at zero
func (r *ProductRepository) AddStock(ctx context.Context, id uuid.UUID, delta int) (*entities.Product, error) {
	return r.apply(ctx, id, map[string]interface{}{
		"stock":      gorm.Expr("CASE WHEN stock + ? < 0 THEN 0 ELSE stock + ? END", delta, delta),
		"updated_at": time.Now(),
	})
}

func (r *ProductRepository) apply(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entities.Product, error) {
	result := GetDB(ctx, r.db).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func productToModel(p *entities.Product) *models.Product {
	return &models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		IsFeatured:  p.IsFeatured,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productToEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		IsFeatured:  m.IsFeatured,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InventoryLogRepository is the append-only stock ledger
type InventoryLogRepository struct {
	db *gorm.DB
}

func NewInventoryLogRepository(db *gorm.DB) *InventoryLogRepository {
	return &InventoryLogRepository{db: db}
}

func (r *InventoryLogRepository) Append(ctx context.Context, entry *entities.InventoryLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = utils.NewID()
	}
	m := &models.InventoryLog{
		ID:        entry.ID,
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
		Type:      string(entry.Type),
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	entry.CreatedAt = m.CreatedAt
	return nil
}

// List returns entries newest first
func (r *InventoryLogRepository) List(ctx context.Context, productID *uuid.UUID) ([]*entities.InventoryLogEntry, error) {
	query := GetDB(ctx, r.db).Order("created_at DESC").Order("id DESC")
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var rows []models.InventoryLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.InventoryLogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entities.InventoryLogEntry{
			ID:        m.ID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			Type:      entities.InventoryChangeType(m.Type),
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
