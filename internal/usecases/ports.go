package usecases

import (
	"context"
	"time"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	"github.com/LexovateAyacucho/qhoar-web/pkg/redis"
)

// Mailer delivers account e-mails
type Mailer interface {
	SendConfirmation(ctx context.Context, to, link string) error
}

// ApprovalNotifier announces approved listings to downstream consumers
type ApprovalNotifier interface {
	BusinessApproved(ctx context.Context, business *entities.Business) error
}

// Locker serializes work on one key across processes
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// SessionStore keeps the server-side half of login sessions
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
