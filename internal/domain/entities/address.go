package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserAddress is a shipping address. At most one per user is primary.
type UserAddress struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Label      string    `json:"label"`
	Recipient  string    `json:"recipient"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	IsPrimary  bool      `json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AddressInput represents input for creating an address
type AddressInput struct {
	Label      string `json:"label" binding:"max=50"`
	Recipient  string `json:"recipient" binding:"required,max=100"`
	Line1      string `json:"line1" binding:"required,max=255"`
	Line2      string `json:"line2" binding:"max=255"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
	Phone      string `json:"phone" binding:"max=32"`
	IsPrimary  bool   `json:"isPrimary"`
}

// AddressUpdate holds a partial address update
type AddressUpdate struct {
	Label      *string `json:"label" binding:"omitempty,max=50"`
	Recipient  *string `json:"recipient" binding:"omitempty,max=100"`
	Line1      *string `json:"line1" binding:"omitempty,max=255"`
	Line2      *string `json:"line2" binding:"omitempty,max=255"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postalCode" binding:"omitempty,max=20"`
	Country    *string `json:"country" binding:"omitempty,len=2"`
	Phone      *string `json:"phone" binding:"omitempty,max=32"`
	IsPrimary  *bool   `json:"isPrimary"`
}

// Apply merges the non-nil fields into a.
func (u AddressUpdate) Apply(a *UserAddress) {
	if u.Label != nil {
		a.Label = *u.Label
	}
	if u.Recipient != nil {
		a.Recipient = *u.Recipient
	}
	if u.Line1 != nil {
		a.Line1 = *u.Line1
	}
	if u.Line2 != nil {
		a.Line2 = *u.Line2
	}
	if u.City != nil {
		a.City = *u.City
	}
	if u.PostalCode != nil {
		a.PostalCode = *u.PostalCode
	}
	if u.Country != nil {
		a.Country = *u.Country
	}
	if u.Phone != nil {
		a.Phone = *u.Phone
	}
	if u.IsPrimary != nil {
		a.IsPrimary = *u.IsPrimary
	}
}
