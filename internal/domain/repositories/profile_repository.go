package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
}
