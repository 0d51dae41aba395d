package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference holds per-user shop settings
type UserPreference struct {
	UserID              uuid.UUID `json:"userId"`
	Newsletter          bool      `json:"newsletter"`
	SMSNotifications    bool      `json:"smsNotifications"`
	PreferredSize       string    `json:"preferredSize"`
	PreferredCategories []string  `json:"preferredCategories"`
	Currency            string    `json:"currency"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DefaultPreference returns the settings a new account starts with.
func DefaultPreference(userID uuid.UUID) *UserPreference {
	return &UserPreference{
		UserID:              userID,
		Newsletter:          false,
		PreferredCategories: []string{},
		Currency:            "USD",
	}
}

// UpdatePreferenceInput represents input for changing preferences
type UpdatePreferenceInput struct {
	Newsletter          *bool    `json:"newsletter"`
	SMSNotifications    *bool    `json:"smsNotifications"`
	PreferredSize       *string  `json:"preferredSize" binding:"omitempty,max=10"`
	PreferredCategories []string `json:"preferredCategories"`
	Currency            *string  `json:"currency" binding:"omitempty,len=3"`
}

// Apply merges the provided fields into p.
func (in UpdatePreferenceInput) Apply(p *UserPreference) {
	if in.Newsletter != nil {
		p.Newsletter = *in.Newsletter
	}
	if in.SMSNotifications != nil {
		p.SMSNotifications = *in.SMSNotifications
	}
	if in.PreferredSize != nil {
		p.PreferredSize = *in.PreferredSize
	}
	if in.PreferredCategories != nil {
		p.PreferredCategories = in.PreferredCategories
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
}
