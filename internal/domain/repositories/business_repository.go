package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// BusinessRepository defines business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	// List returns businesses newest first with the owner profile loaded
	List(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error)
	HasPremiumByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error
	SetPremium(ctx context.Context, id uuid.UUID, isPremium bool) error
	Update(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error
	UpdateDesign(ctx context.Context, id uuid.UUID, cfg entities.DesignConfig, logoURL, heroImageURL string) error
	CountByStatus(ctx context.Context, status entities.BusinessStatus) (int64, error)
	CountPremium(ctx context.Context) (int64, error)
}

// BusinessImageRepository defines gallery data operations
type BusinessImageRepository interface {
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entities.BusinessImage, error)
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*entities.BusinessImage, error)
	Create(ctx context.Context, image *entities.BusinessImage) error
	// UpsertOrder writes order_index of every given image in one statement
	UpsertOrder(ctx context.Context, images []entities.BusinessImage) error
	UpdateMetadata(ctx context.Context, businessID, id uuid.UUID, title, description string) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	NextOrderIndex(ctx context.Context, businessID uuid.UUID) (int, error)
}
