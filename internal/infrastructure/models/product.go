package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"`
	Category    string    `gorm:"type:varchar(100);not null;index"`
	ImageURL    string    `gorm:"column:image_url;type:text"`
	IsFeatured  bool      `gorm:"not null;default:false"`
	Stock       int       `gorm:"not null;default:0"`
	MinStock    null.Int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryLog rows are never updated or deleted.
type InventoryLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	Type      string    `gorm:"type:varchar(10);not null"`
	Note      string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time
}
