package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	DisplayName  null.String `gorm:"type:varchar(100)"`
	Mobile       null.String `gorm:"type:varchar(32)"`
	IsVerified   bool        `gorm:"not null;default:false"`
	IsAdmin      bool        `gorm:"not null;default:false"`
	IsSuspended  bool        `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PendingRegistration struct {
	Email     string    `gorm:"type:varchar(255);primaryKey"`
	Code      string    `gorm:"type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
