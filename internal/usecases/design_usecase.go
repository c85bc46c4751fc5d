package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
)

const designConfigSchema = `{
  "type": "object",
  "required": ["layout_variant"],
  "additionalProperties": false,
  "properties": {
    "layout_variant":     {"type": "string", "enum": ["standard", "modern", "visual"]},
    "primary_color":      {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "secondary_color":    {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "cover_type":         {"type": "string", "enum": ["color", "image", "video"]},
    "cover_url":          {"type": "string", "maxLength": 2048},
    "background_url":     {"type": "string", "maxLength": 2048},
    "background_opacity": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

var designSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(designConfigSchema))
	if err != nil {
		panic(fmt.Sprintf("design config schema: %v", err))
	}
	return schema
}()

// ValidateDesignConfig checks a config against the design schema
func ValidateDesignConfig(cfg entities.DesignConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	result, err := designSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return domainerrors.BadRequest("invalid design config: " + strings.Join(msgs, "; "))
}

// DesignUsecase loads and saves the design editor state of premium businesses
type DesignUsecase struct {
	businessRepo repositories.BusinessRepository
	imageRepo    repositories.BusinessImageRepository
}

func NewDesignUsecase(businessRepo repositories.BusinessRepository, imageRepo repositories.BusinessImageRepository) *DesignUsecase {
	return &DesignUsecase{
		businessRepo: businessRepo,
		imageRepo:    imageRepo,
	}
}

// ListOwned returns every business of the portal user
func (u *DesignUsecase) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error) {
	return u.businessRepo.ListByOwner(ctx, ownerID)
}

// GetDesign returns the business, its config over defaults and its gallery
func (u *DesignUsecase) GetDesign(ctx context.Context, ownerID, businessID uuid.UUID) (*entities.DesignView, error) {
	business, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	gallery, err := u.imageRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	return &entities.DesignView{
		Business: business,
		Config:   business.DesignConfig.WithDefaults(),
		Gallery:  gallery,
	}, nil
}

// SaveDesign writes config, logo and hero image in one update
func (u *DesignUsecase) SaveDesign(ctx context.Context, ownerID, businessID uuid.UUID, input entities.SaveDesignInput) error {
	if err := ValidateDesignConfig(input.Config); err != nil {
		return err
	}
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return err
	}
	if err := u.businessRepo.UpdateDesign(ctx, businessID, input.Config.WithDefaults(), input.LogoURL, input.HeroImageURL); err != nil {
		return fmt.Errorf("save design: %w", err)
	}
	return nil
}
