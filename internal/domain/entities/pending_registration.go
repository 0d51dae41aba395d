package entities

import "time"

// PendingRegistration is an unconfirmed registration awaiting its emailed code.
// There is at most one per email.
type PendingRegistration struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired reports whether the code can no longer be used at now.
// A code is still valid at exactly its expiry instant.
func (p *PendingRegistration) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// RegisterInitInput starts a registration
type RegisterInitInput struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterVerifyInput checks an emailed code
type RegisterVerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// RegisterCompleteInput finishes a registration
type RegisterCompleteInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
