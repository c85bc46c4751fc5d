package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// EventRepository defines event data operations
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	List(ctx context.Context) ([]*entities.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*entities.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
