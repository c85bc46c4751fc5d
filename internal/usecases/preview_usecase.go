package usecases

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/internal/layouts"
)

// PreviewUsecase renders business profiles with the layout renderers
type PreviewUsecase struct {
	businessRepo repositories.BusinessRepository
	imageRepo    repositories.BusinessImageRepository
}

func NewPreviewUsecase(businessRepo repositories.BusinessRepository, imageRepo repositories.BusinessImageRepository) *PreviewUsecase {
	return &PreviewUsecase{
		businessRepo: businessRepo,
		imageRepo:    imageRepo,
	}
}

// Preview renders the owner's business with the stored config, or with
// variant when one is given so unsaved choices can be compared.
func (u *PreviewUsecase) Preview(ctx context.Context, ownerID, businessID uuid.UUID, variant string) ([]byte, error) {
	business, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	cfg := business.DesignConfig
	if variant != "" {
		v := entities.LayoutVariant(variant)
		if !v.IsValid() {
			return nil, domainerrors.BadRequest("unknown layout variant")
		}
		cfg.LayoutVariant = v
	}
	return u.render(ctx, business, cfg)
}

// PublicProfile renders an active business the way visitors see it
func (u *PreviewUsecase) PublicProfile(ctx context.Context, businessID uuid.UUID) ([]byte, error) {
	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.Status != entities.BusinessStatusActive {
		return nil, domainerrors.NotFound("business not found")
	}
	return u.render(ctx, business, business.DesignConfig)
}

func (u *PreviewUsecase) render(ctx context.Context, business *entities.Business, cfg entities.DesignConfig) ([]byte, error) {
	gallery, err := u.imageRepo.ListByBusiness(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	var buf bytes.Buffer
	if err := layouts.ForVariant(cfg.LayoutVariant).Render(&buf, layouts.NewView(business, cfg, gallery)); err != nil {
		return nil, fmt.Errorf("render %s layout: %w", cfg.LayoutVariant, err)
	}
	return buf.Bytes(), nil
}
