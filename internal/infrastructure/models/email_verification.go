package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailVerification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Token      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	VerifiedAt *time.Time
	CreatedAt  time.Time

	User User `gorm:"foreignKey:UserID"`
}
