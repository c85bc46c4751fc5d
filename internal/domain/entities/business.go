package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BusinessStatus is the approval state of a listing
type BusinessStatus string

const (
	BusinessStatusPending  BusinessStatus = "pending"
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
)

// IsValid reports whether s is a known status
func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessStatusPending, BusinessStatusActive, BusinessStatusInactive:
		return true
	}
	return false
}

// Business represents a directory listing owned by a portal user
type Business struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	Name          string         `json:"name"`
	RUC           string         `json:"ruc"`
	Description   string         `json:"description"`
	Address       string         `json:"address"`
	Phone         string         `json:"phone"`
	WhatsApp      string         `json:"whatsapp"`
	Latitude      null.Float64   `json:"latitude"`
	Longitude     null.Float64   `json:"longitude"`
	WebsiteURL    string         `json:"website_url,omitempty"`
	LogoURL       string         `json:"logo_url"`
	HeroImageURL  string         `json:"hero_image_url"`
	Status        BusinessStatus `json:"status"`
	IsPremium     bool           `json:"is_premium"`
	SubcategoryID null.Int64     `json:"subcategory_id"`
	DesignConfig  DesignConfig   `json:"design_config"`
	SocialLinks   SocialLinks    `json:"social_links"`
	CreatedAt     time.Time      `json:"created_at"`

	Owner *Profile `json:"owner,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set
func (b *Business) HasCoordinates() bool {
	return b.Latitude.Valid && b.Longitude.Valid
}

// BusinessFilter narrows admin listings
type BusinessFilter struct {
	Status BusinessStatus
	Search string
	Limit  int
}

// UpdateBusinessInput holds the admin-editable fields. Nil means unchanged.
type UpdateBusinessInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	RUC         *string `json:"ruc"`
	Status      *string `json:"status"`
	IsPremium   *bool   `json:"is_premium"`
}

// SaveDesignInput is written in one update by the design editor
type SaveDesignInput struct {
	Config       DesignConfig `json:"design_config"`
	LogoURL      string       `json:"logo_url"`
	HeroImageURL string       `json:"hero_image_url"`
}

// DesignView is what the design editor loads
type DesignView struct {
	Business *Business       `json:"business"`
	Config   DesignConfig    `json:"config"`
	Gallery  []BusinessImage `json:"gallery"`
}
