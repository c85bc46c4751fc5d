package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/models"
)

// BusinessImageRepository implements gallery data operations
type BusinessImageRepository struct {
	db *gorm.DB
}

// NewBusinessImageRepository creates a new gallery repository
func NewBusinessImageRepository(db *gorm.DB) *BusinessImageRepository {
	return &BusinessImageRepository{db: db}
}

// ListByBusiness returns the gallery in display order
func (r *BusinessImageRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entities.BusinessImage, error) {
	var rows []models.BusinessImage
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("order_index ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.BusinessImage, 0, len(rows))
	for i := range rows {
		out = append(out, toImageEntity(&rows[i]))
	}
	return out, nil
}

// GetByID gets one image of a business
func (r *BusinessImageRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*entities.BusinessImage, error) {
	var m models.BusinessImage
	if err := r.db.WithContext(ctx).Where("id = ? AND business_id = ?", id, businessID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	img := toImageEntity(&m)
	return &img, nil
}

// Create inserts a gallery record
func (r *BusinessImageRepository) Create(ctx context.Context, image *entities.BusinessImage) error {
	m := toImageModel(image)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	image.CreatedAt = m.CreatedAt
	return nil
}

// UpsertOrder persists order_index of every image in a single INSERT .. ON CONFLICT (id) DO UPDATE
func (r *BusinessImageRepository) UpsertOrder(ctx context.Context, images []entities.BusinessImage) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]models.BusinessImage, 0, len(images))
	for i := range images {
		rows = append(rows, toImageModel(&images[i]))
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_index"}),
		}).
		Create(&rows).Error
}

// UpdateMetadata writes title and description only
func (r *BusinessImageRepository) UpdateMetadata(ctx context.Context, businessID, id uuid.UUID, title, description string) error {
	result := r.db.WithContext(ctx).Model(&models.BusinessImage{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Updates(map[string]interface{}{"title": title, "description": description})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes one record. Remaining indices are not renumbered.
func (r *BusinessImageRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND business_id = ?", id, businessID).Delete(&models.BusinessImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// NextOrderIndex returns MAX(order_index)+1, or 0 for an empty gallery
func (r *BusinessImageRepository) NextOrderIndex(ctx context.Context, businessID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&models.BusinessImage{}).
		Where("business_id = ?", businessID).
		Select("COALESCE(MAX(order_index), -1) + 1").
		Scan(&next).Error
	return next, err
}

func toImageModel(img *entities.BusinessImage) models.BusinessImage {
	return models.BusinessImage{
		ID:          img.ID,
		BusinessID:  img.BusinessID,
		ImageURL:    img.ImageURL,
		Title:       img.Title,
		Description: img.Description,
		OrderIndex:  img.OrderIndex,
		CreatedAt:   img.CreatedAt,
	}
}

func toImageEntity(m *models.BusinessImage) entities.BusinessImage {
	return entities.BusinessImage{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		ImageURL:    m.ImageURL,
		Title:       m.Title,
		Description: m.Description,
		OrderIndex:  m.OrderIndex,
		CreatedAt:   m.CreatedAt,
	}
}
