package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/models"
)

var marshalJSON = json.Marshal

// BusinessRepository implements business data operations
type BusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Create creates a new business
func (r *BusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	m, err := toBusinessModel(business)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a business by ID with its owner profile
func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	var m models.Business
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBusinessEntity(&m), nil
}

// List returns businesses newest first
func (r *BusinessRepository) List(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error) {
	query := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR ruc LIKE ?", term, term)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.Business
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBusinessEntities(rows), nil
}

// ListByOwner returns the businesses of one owner
func (r *BusinessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error) {
	var rows []models.Business
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBusinessEntities(rows), nil
}

// HasPremiumByOwner reports whether the owner has at least one premium business
func (r *BusinessRepository) HasPremiumByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Business{}).
		Where("owner_id = ? AND is_premium = ?", ownerID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus sets the approval status
func (r *BusinessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": string(status)})
}

// SetPremium sets is_premium. The stored design config is left untouched.
func (r *BusinessRepository) SetPremium(ctx context.Context, id uuid.UUID, isPremium bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_premium": isPremium})
}

// Update writes the admin-editable fields that are set
func (r *BusinessRepository) Update(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.RUC != nil {
		updates["ruc"] = *input.RUC
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.IsPremium != nil {
		updates["is_premium"] = *input.IsPremium
	}
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.updateColumns(ctx, id, updates)
}

// UpdateDesign writes design_config, logo_url and hero_image_url in one statement
func (r *BusinessRepository) UpdateDesign(ctx context.Context, id uuid.UUID, cfg entities.DesignConfig, logoURL, heroImageURL string) error {
	raw, err := marshalJSON(cfg)
	if err != nil {
		return err
	}
	return r.updateColumns(ctx, id, map[string]interface{}{
		"design_config":  datatypes.JSON(raw),
		"logo_url":       logoURL,
		"hero_image_url": heroImageURL,
	})
}

// CountByStatus counts businesses in a status
func (r *BusinessRepository) CountByStatus(ctx context.Context, status entities.BusinessStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Business{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// CountPremium counts premium businesses
func (r *BusinessRepository) CountPremium(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Business{}).Where("is_premium = ?", true).Count(&count).Error
	return count, err
}

func (r *BusinessRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toBusinessModel(b *entities.Business) (*models.Business, error) {
	design, err := marshalJSON(b.DesignConfig)
	if err != nil {
		return nil, err
	}
	social, err := marshalJSON(b.SocialLinks)
	if err != nil {
		return nil, err
	}
	return &models.Business{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		RUC:           b.RUC,
		Description:   b.Description,
		Address:       b.Address,
		Phone:         b.Phone,
		WhatsApp:      b.WhatsApp,
		Latitude:      b.Latitude.Ptr(),
		Longitude:     b.Longitude.Ptr(),
		WebsiteURL:    b.WebsiteURL,
		LogoURL:       b.LogoURL,
		HeroImageURL:  b.HeroImageURL,
		Status:        string(b.Status),
		IsPremium:     b.IsPremium,
		SubcategoryID: b.SubcategoryID.Ptr(),
		DesignConfig:  datatypes.JSON(design),
		SocialLinks:   datatypes.JSON(social),
		CreatedAt:     b.CreatedAt,
	}, nil
}

// toBusinessEntity is the single place stored design config is merged over defaults
func toBusinessEntity(m *models.Business) *entities.Business {
	return &entities.Business{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		RUC:           m.RUC,
		Description:   m.Description,
		Address:       m.Address,
		Phone:         m.Phone,
		WhatsApp:      m.WhatsApp,
		Latitude:      null.Float64FromPtr(m.Latitude),
		Longitude:     null.Float64FromPtr(m.Longitude),
		WebsiteURL:    m.WebsiteURL,
		LogoURL:       m.LogoURL,
		HeroImageURL:  m.HeroImageURL,
		Status:        entities.BusinessStatus(m.Status),
		IsPremium:     m.IsPremium,
		SubcategoryID: null.Int64FromPtr(m.SubcategoryID),
		DesignConfig:  entities.ParseDesignConfig(m.DesignConfig),
		SocialLinks:   entities.ParseSocialLinks(m.SocialLinks),
		CreatedAt:     m.CreatedAt,
		Owner:         toProfileEntity(m.Owner),
	}
}

func toBusinessEntities(rows []models.Business) []*entities.Business {
	out := make([]*entities.Business, 0, len(rows))
	for i := range rows {
		out = append(out, toBusinessEntity(&rows[i]))
	}
	return out
}
