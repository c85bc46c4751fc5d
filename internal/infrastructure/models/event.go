package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BusinessID    *uuid.UUID `gorm:"type:uuid;index"`
	OrganizerName *string    `gorm:"type:varchar(200)"`
	Title         string     `gorm:"type:varchar(200);not null"`
	Description   string     `gorm:"type:text"`
	StartDate     time.Time  `gorm:"not null;index"`
	EndDate       *time.Time
	LocationText  string   `gorm:"type:text"`
	Latitude      *float64 `gorm:"column:latitude"`
	Longitude     *float64 `gorm:"column:longitude"`
	PosterURL     string   `gorm:"type:text"`
	IsFeatured    bool     `gorm:"not null;default:false"`
	Category      string   `gorm:"type:varchar(30);not null"`
	ExternalLink  *string  `gorm:"type:text"`
	ActionText    *string  `gorm:"type:varchar(100)"`
	CreatedAt     time.Time

	Business *Business `gorm:"foreignKey:BusinessID"`
}
