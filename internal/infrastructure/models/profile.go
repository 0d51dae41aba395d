package models

import (
	"time"

	"github.com/google/uuid"
)

type UserPreference struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Newsletter          bool      `gorm:"not null;default:false"`
	SMSNotifications    bool      `gorm:"column:sms_notifications;not null;default:false"`
	PreferredSize       string    `gorm:"type:varchar(10)"`
	PreferredCategories []string  `gorm:"type:text;serializer:json"`
	Currency            string    `gorm:"type:varchar(3);not null;default:'USD'"`
	UpdatedAt           time.Time
}

type UserAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"type:varchar(50)"`
	Recipient  string    `gorm:"type:varchar(100)"`
	Line1      string    `gorm:"column:line1;type:varchar(255)"`
	Line2      string    `gorm:"column:line2;type:varchar(255)"`
	City       string    `gorm:"type:varchar(100)"`
	PostalCode string    `gorm:"type:varchar(20)"`
	Country    string    `gorm:"type:varchar(2)"`
	Phone      string    `gorm:"type:varchar(32)"`
	IsPrimary  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
