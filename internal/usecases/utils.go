package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/pkg/redis"
)

// ownedPremiumBusiness loads a business the portal user may edit
func ownedPremiumBusiness(ctx context.Context, repo repositories.BusinessRepository, ownerID, businessID uuid.UUID) (*entities.Business, error) {
	business, err := repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, domainerrors.ErrNotOwner
	}
	if !business.IsPremium {
		return nil, domainerrors.ErrPremiumRequired
	}
	return business, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// lockErr maps a contended lock to ErrLocked
func lockErr(err error) error {
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return fmt.Errorf("%w: %v", domainerrors.ErrLocked, err)
	}
	return fmt.Errorf("acquire lock: %w", err)
}
