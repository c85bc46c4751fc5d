package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Business struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(200);not null"`
	RUC           string         `gorm:"column:ruc;type:varchar(20)"`
	Description   string         `gorm:"type:text"`
	Address       string         `gorm:"type:text"`
	Phone         string         `gorm:"type:varchar(30)"`
	WhatsApp      string         `gorm:"column:whatsapp;type:varchar(30)"`
	Latitude      *float64       `gorm:"column:latitude"`
	Longitude     *float64       `gorm:"column:longitude"`
	WebsiteURL    string         `gorm:"type:text"`
	LogoURL       string         `gorm:"type:text"`
	HeroImageURL  string         `gorm:"type:text"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsPremium     bool           `gorm:"not null;default:false"`
	SubcategoryID *int64         `gorm:"index"`
	DesignConfig  datatypes.JSON `gorm:"type:jsonb"`
	SocialLinks   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time

	Owner *Profile `gorm:"foreignKey:OwnerID"`
}

func (Business) TableName() string {
	return "businesses"
}

type BusinessImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL    string    `gorm:"type:text;not null"`
	Title       string    `gorm:"type:varchar(200)"`
	Description string    `gorm:"type:text"`
	OrderIndex  int       `gorm:"not null"`
	CreatedAt   time.Time
}
