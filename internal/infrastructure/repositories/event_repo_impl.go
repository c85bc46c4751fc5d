package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/models"
)

// EventRepository implements event data operations
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	m := &models.Event{
		ID:            event.ID,
		BusinessID:    event.BusinessID,
		OrganizerName: event.OrganizerName.Ptr(),
		Title:         event.Title,
		Description:   event.Description,
		StartDate:     event.StartDate,
		EndDate:       event.EndDate.Ptr(),
		LocationText:  event.LocationText,
		Latitude:      event.Latitude.Ptr(),
		Longitude:     event.Longitude.Ptr(),
		PosterURL:     event.PosterURL,
		IsFeatured:    event.IsFeatured,
		Category:      string(event.Category),
		ExternalLink:  event.ExternalLink.Ptr(),
		ActionText:    event.ActionText.Ptr(),
		CreatedAt:     event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets an event with its organizing business
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	var m models.Event
	if err := r.db.WithContext(ctx).Preload("Business").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEventEntity(&m), nil
}

// List returns every event, latest start first
func (r *EventRepository) List(ctx context.Context) ([]*entities.Event, error) {
	var rows []models.Event
	if err := r.db.WithContext(ctx).Preload("Business").Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEventEntities(rows), nil
}

// ListUpcoming returns events starting at or after from, soonest first
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*entities.Event, error) {
	query := r.db.WithContext(ctx).Preload("Business").Where("start_date >= ?", from).Order("start_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.Event
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEventEntities(rows), nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toEventEntity(m *models.Event) *entities.Event {
	e := &entities.Event{
		ID:            m.ID,
		BusinessID:    m.BusinessID,
		OrganizerName: null.StringFromPtr(m.OrganizerName),
		Title:         m.Title,
		Description:   m.Description,
		StartDate:     m.StartDate,
		EndDate:       null.TimeFromPtr(m.EndDate),
		LocationText:  m.LocationText,
		Latitude:      null.Float64FromPtr(m.Latitude),
		Longitude:     null.Float64FromPtr(m.Longitude),
		PosterURL:     m.PosterURL,
		IsFeatured:    m.IsFeatured,
		Category:      entities.EventCategory(m.Category),
		ExternalLink:  null.StringFromPtr(m.ExternalLink),
		ActionText:    null.StringFromPtr(m.ActionText),
		CreatedAt:     m.CreatedAt,
	}
	if m.Business != nil {
		e.Business = &entities.EventBusiness{Name: m.Business.Name, LogoURL: m.Business.LogoURL}
	}
	return e
}

func toEventEntities(rows []models.Event) []*entities.Event {
	out := make([]*entities.Event, 0, len(rows))
	for i := range rows {
		out = append(out, toEventEntity(&rows[i]))
	}
	return out
}
