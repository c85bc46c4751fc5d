package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its primary key with users.id
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(30);not null;default:'business_owner'"`
	FullName  string    `gorm:"type:varchar(150)"`
	Phone     string    `gorm:"type:varchar(30)"`
	DNI       string    `gorm:"column:dni;type:varchar(20)"`
	JobTitle  string    `gorm:"type:varchar(100)"`
	AvatarURL string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
