package entities

import (
	"time"

	"github.com/google/uuid"
)

// Role is the portal role of a profile
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBusinessOwner Role = "business_owner"
)

// Profile holds role and contact data. ID equals the user ID.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	DNI       string    `json:"dni,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
