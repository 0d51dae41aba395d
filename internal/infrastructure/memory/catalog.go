package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/pkg/utils"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(ctx context.Context, product *entities.Product) error {
	defer r.s.lock(ctx)()

	if product.ID == uuid.Nil {
		product.ID = utils.NewID()
	}
	if _, exists := r.s.st.products[product.ID]; exists {
		return domainerrors.ErrAlreadyExists
	}
	now := r.s.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	p := *product
	r.s.st.products[p.ID] = &p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.st.products[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *productRepo) List(ctx context.Context, filter entities.ProductFilter) ([]*entities.Product, int64, error) {
	defer r.s.lock(ctx)()

	matched := make([]*entities.Product, 0, len(r.s.st.products))
	for _, p := range r.s.st.products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		c := *p
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := min(max(filter.Offset, 0), len(matched))
	matched = matched[start:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *productRepo) Update(ctx context.Context, id uuid.UUID, update entities.ProductUpdate) (*entities.Product, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.st.products[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	updated := *p
	update.Apply(&updated)
	updated.UpdatedAt = r.s.now()
	r.s.st.products[id] = &updated
	c := updated
	return &c, nil
}

func (r *productRepo) AddStock(ctx context.Context, id uuid.UUID, delta int) (*entities.Product, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.st.products[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	updated := *p
	updated.Stock = max(0, p.Stock+delta)
	updated.UpdatedAt = r.s.now()
	r.s.st.products[id] = &updated
	c := updated
	return &c, nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.st.products[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.s.st.products, id)
	return nil
}

type inventoryLogRepo struct {
	s *Store
}

func (r *inventoryLogRepo) Append(ctx context.Context, entry *entities.InventoryLogEntry) error {
	defer r.s.lock(ctx)()

	if entry.ID == uuid.Nil {
		entry.ID = utils.NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.s.now()
	}
	e := *entry
	r.s.st.logs = append(r.s.st.logs, &e)
	return nil
}

func (r *inventoryLogRepo) List(ctx context.Context, productID *uuid.UUID) ([]*entities.InventoryLogEntry, error) {
	defer r.s.lock(ctx)()

	out := make([]*entities.InventoryLogEntry, 0, len(r.s.st.logs))
	// appended in time order; walk backwards for newest first
	for i := len(r.s.st.logs) - 1; i >= 0; i-- {
		e := r.s.st.logs[i]
		if productID != nil && e.ProductID != *productID {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	return out, nil
}
