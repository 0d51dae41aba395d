package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered customer or staff account
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	DisplayName  null.String `json:"displayName"`
	Mobile       null.String `json:"mobile"`
	IsVerified   bool        `json:"isVerified"`
	IsAdmin      bool        `json:"isAdmin"`
	IsSuspended  bool        `json:"isSuspended"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UserUpdate holds a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	PasswordHash *string
	DisplayName  *null.String
	Mobile       *null.String
	IsVerified   *bool
	IsAdmin      *bool
	IsSuspended  *bool
}

// Apply merges the non-nil fields of the update into u.
func (p UserUpdate) Apply(u *User) {
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Mobile != nil {
		u.Mobile = *p.Mobile
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	if p.IsSuspended != nil {
		u.IsSuspended = *p.IsSuspended
	}
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	SessionID string `json:"-"`
	User      *User  `json:"user"`
}

// UpdateProfileInput represents input for profile changes.
// An empty string clears the field.
type UpdateProfileInput struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	Mobile      *string `json:"mobile" binding:"omitempty,max=32"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPasswordInput starts a password reset
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput completes a password reset
type ResetPasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
