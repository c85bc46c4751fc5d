package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a login identity
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	EmailVerifiedAt null.Time `json:"email_verified_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsVerified reports whether the e-mail address was confirmed
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt.Valid
}

// RegisterInput represents input for creating a business owner account
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by a successful login or refresh
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	SessionID    string    `json:"session_id"`
	Redirect     string    `json:"redirect"`
	Profile      *Profile  `json:"profile"`
}

// ResendConfirmationInput asks for a fresh confirmation link
type ResendConfirmationInput struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailVerification is a confirmation token issued at registration
type EmailVerification struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Token      string
	ExpiresAt  time.Time
	VerifiedAt null.Time
	CreatedAt  time.Time
}
