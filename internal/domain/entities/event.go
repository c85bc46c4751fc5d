package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// EventCategory classifies an event
type EventCategory string

const (
	EventCategoryCultural        EventCategory = "cultural"
	EventCategorySocial          EventCategory = "social"
	EventCategoryAcademico       EventCategory = "academico"
	EventCategoryDeportivo       EventCategory = "deportivo"
	EventCategoryReligioso       EventCategory = "religioso"
	EventCategoryEntretenimiento EventCategory = "entretenimiento"
	EventCategoryOtro            EventCategory = "otro"
)

// IsValid reports whether c is a known category
func (c EventCategory) IsValid() bool {
	switch c {
	case EventCategoryCultural, EventCategorySocial, EventCategoryAcademico, EventCategoryDeportivo,
		EventCategoryReligioso, EventCategoryEntretenimiento, EventCategoryOtro:
		return true
	}
	return false
}

// OrganizerType tells who is credited for an event
type OrganizerType string

const (
	OrganizerBusiness OrganizerType = "business"
	OrganizerManual   OrganizerType = "manual"
)

// Event is a listed event, organized by a business or a free-text organizer
type Event struct {
	ID            uuid.UUID     `json:"id"`
	BusinessID    *uuid.UUID    `json:"business_id"`
	OrganizerName null.String   `json:"organizer_name"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       null.Time     `json:"end_date"`
	LocationText  string        `json:"location_text"`
	Latitude      null.Float64  `json:"latitude"`
	Longitude     null.Float64  `json:"longitude"`
	PosterURL     string        `json:"poster_url,omitempty"`
	IsFeatured    bool          `json:"is_featured"`
	Category      EventCategory `json:"category"`
	ExternalLink  null.String   `json:"external_link"`
	ActionText    null.String   `json:"action_text"`
	CreatedAt     time.Time     `json:"created_at"`

	Business *EventBusiness `json:"businesses,omitempty"`
}

// EventBusiness is the organizer summary shown in listings
type EventBusiness struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// CreateEventInput mirrors the admin event form. Coordinates and the featured
// checkbox arrive as strings.
type CreateEventInput struct {
	Title         string `json:"title" form:"title" binding:"required"`
	Description   string `json:"description" form:"description"`
	Category      string `json:"category" form:"category" binding:"required"`
	StartDate     string `json:"start_date" form:"start_date" binding:"required"`
	EndDate       string `json:"end_date" form:"end_date"`
	LocationText  string `json:"location_text" form:"location_text"`
	Latitude      string `json:"latitude" form:"latitude"`
	Longitude     string `json:"longitude" form:"longitude"`
	PosterURL     string `json:"poster_url" form:"poster_url"`
	IsFeatured    string `json:"is_featured" form:"is_featured"`
	OrganizerType string `json:"organizer_type" form:"organizer_type"`
	BusinessID    string `json:"business_id" form:"business_id"`
	OrganizerName string `json:"organizer_name" form:"organizer_name"`
	ExternalLink  string `json:"external_link" form:"external_link"`
	ActionText    string `json:"action_text" form:"action_text"`
}
