package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

// EmailVerificationRepository defines email verification operations
type EmailVerificationRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string) error
	// GetByToken returns the owner of a live (unexpired, unverified) token
	GetByToken(ctx context.Context, token string) (*entities.User, error)
	MarkVerified(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
