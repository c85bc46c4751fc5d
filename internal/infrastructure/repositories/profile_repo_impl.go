package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/models"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	return GetDB(ctx, r.db).Create(toProfileModel(profile)).Error
}

// GetByID gets a profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

func toProfileModel(p *entities.Profile) *models.Profile {
	return &models.Profile{
		ID:        p.ID,
		Role:      string(p.Role),
		FullName:  p.FullName,
		Phone:     p.Phone,
		DNI:       p.DNI,
		JobTitle:  p.JobTitle,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProfileEntity(m *models.Profile) *entities.Profile {
	if m == nil {
		return nil
	}
	return &entities.Profile{
		ID:        m.ID,
		Role:      entities.Role(m.Role),
		FullName:  m.FullName,
		Phone:     m.Phone,
		DNI:       m.DNI,
		JobTitle:  m.JobTitle,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
