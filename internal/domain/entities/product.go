package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultMinStock is the low-stock threshold for products without their own.
const DefaultMinStock = 5

// Product represents a catalog item
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // minor units
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	IsFeatured  bool      `json:"isFeatured"`
	Stock       int       `json:"stock"`
	MinStock    null.Int  `json:"minStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LowStockThreshold returns the threshold used for this product when the
// caller does not provide one. An explicit zero is kept.
func (p *Product) LowStockThreshold(fallback int) int {
	if p.MinStock.Valid {
		return p.MinStock.Int
	}
	return fallback
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// ProductUpdate holds a partial product update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	Category    *string `json:"category" binding:"omitempty,min=1,max=100"`
	ImageURL    *string `json:"imageUrl"`
	IsFeatured  *bool   `json:"isFeatured"`
	MinStock    *int    `json:"minStock" binding:"omitempty,min=0"`
}

// Apply merges the non-nil fields of the update into p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.IsFeatured != nil {
		p.IsFeatured = *u.IsFeatured
	}
	if u.MinStock != nil {
		p.MinStock = null.IntFrom(*u.MinStock)
	}
}

// CreateProductInput represents input for creating a product
type CreateProductInput struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category" binding:"required,min=1,max=100"`
	ImageURL    string `json:"imageUrl"`
	IsFeatured  bool   `json:"isFeatured"`
	Stock       int    `json:"stock" binding:"min=0"`
	MinStock    *int   `json:"minStock" binding:"omitempty,min=0"`
}
