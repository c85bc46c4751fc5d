package usecases

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/metrics"
	"github.com/LexovateAyacucho/qhoar-web/pkg/utils"
)

// event form date layouts, most specific first
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// AdminUsecase handles the admin panel mutations and listings
type AdminUsecase struct {
	businessRepo repositories.BusinessRepository
	eventRepo    repositories.EventRepository
	notifier     ApprovalNotifier
	now          func() time.Time
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	businessRepo repositories.BusinessRepository,
	eventRepo repositories.EventRepository,
	notifier ApprovalNotifier,
) *AdminUsecase {
	return &AdminUsecase{
		businessRepo: businessRepo,
		eventRepo:    eventRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// ApproveBusiness activates a pending listing and announces it.
// Notification failures are logged only.
func (u *AdminUsecase) ApproveBusiness(ctx context.Context, id uuid.UUID) error {
	if err := u.businessRepo.UpdateStatus(ctx, id, entities.BusinessStatusActive); err != nil {
		return fmt.Errorf("approve business: %w", err)
	}
	metrics.BusinessApprovals.Inc()

	if u.notifier == nil {
		return nil
	}
	business, err := u.businessRepo.GetByID(ctx, id)
	if err != nil {
		logger.Warn(ctx, "Approved business could not be reloaded for notification", zap.String("business_id", id.String()), zap.Error(err))
		return nil
	}
	if err := u.notifier.BusinessApproved(ctx, business); err != nil {
		logger.Error(ctx, "Failed to publish business approval", zap.String("business_id", id.String()), zap.Error(err))
	}
	return nil
}

// TogglePremium sets is_premium. The stored design config is left untouched.
func (u *AdminUsecase) TogglePremium(ctx context.Context, id uuid.UUID, isPremium bool) error {
	if err := u.businessRepo.SetPremium(ctx, id, isPremium); err != nil {
		return fmt.Errorf("toggle premium: %w", err)
	}
	return nil
}

// UpdateBusiness writes the admin-editable fields
func (u *AdminUsecase) UpdateBusiness(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error {
	if input.Status != nil && !entities.BusinessStatus(*input.Status).IsValid() {
		return domainerrors.BadRequest("status must be one of pending, active, inactive")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return domainerrors.BadRequest("name cannot be empty")
	}
	if err := u.businessRepo.Update(ctx, id, input); err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// ListBusinesses lists businesses, optionally by status, with owner profiles
func (u *AdminUsecase) ListBusinesses(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.BadRequest("unknown status filter")
	}
	return u.businessRepo.List(ctx, filter)
}

func (u *AdminUsecase) GetBusiness(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	return u.businessRepo.GetByID(ctx, id)
}

// CreateEvent validates the event form and inserts one event
func (u *AdminUsecase) CreateEvent(ctx context.Context, input entities.CreateEventInput) (*entities.Event, error) {
	event, err := u.buildEvent(input)
	if err != nil {
		return nil, err
	}
	if err := u.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (u *AdminUsecase) buildEvent(input entities.CreateEventInput) (*entities.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerrors.BadRequest("title is required")
	}
	category := entities.EventCategory(input.Category)
	if !category.IsValid() {
		return nil, domainerrors.BadRequest("unknown event category")
	}
	start, err := parseEventTime(input.StartDate)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid start_date")
	}

	event := &entities.Event{
		ID:           utils.GenerateUUIDv7(),
		Title:        title,
		Description:  input.Description,
		StartDate:    start,
		LocationText: input.LocationText,
		PosterURL:    input.PosterURL,
		IsFeatured:   input.IsFeatured == "on" || input.IsFeatured == "true",
		Category:     category,
		ExternalLink: optionalString(input.ExternalLink),
		ActionText:   optionalString(input.ActionText),
	}

	// anything but "business" is a manually named organizer
	switch entities.OrganizerType(input.OrganizerType) {
	case entities.OrganizerBusiness:
		if input.BusinessID == "" {
			return nil, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "Debes seleccionar una empresa registrada.", domainerrors.ErrOrganizerRequired)
		}
		businessID, err := uuid.Parse(input.BusinessID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid business_id")
		}
		event.BusinessID = &businessID
	default:
		name := strings.TrimSpace(input.OrganizerName)
		if name == "" {
			return nil, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "Debes escribir el nombre del organizador.", domainerrors.ErrOrganizerRequired)
		}
		event.OrganizerName = null.StringFrom(name)
	}

	if input.EndDate != "" {
		end, err := parseEventTime(input.EndDate)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid end_date")
		}
		event.EndDate = null.TimeFrom(end)
	}
	if event.Latitude, err = optionalFloat(input.Latitude); err != nil {
		return nil, domainerrors.BadRequest("invalid latitude")
	}
	if event.Longitude, err = optionalFloat(input.Longitude); err != nil {
		return nil, domainerrors.BadRequest("invalid longitude")
	}
	return event, nil
}

func (u *AdminUsecase) ListEvents(ctx context.Context) ([]*entities.Event, error) {
	return u.eventRepo.List(ctx)
}

func (u *AdminUsecase) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := u.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// DashboardStats collects the counters and short lists of the admin dashboard
func (u *AdminUsecase) DashboardStats(ctx context.Context) (*entities.DashboardStats, error) {
	var (
		stats entities.DashboardStats
		err   error
	)
	if stats.ActiveCount, err = u.businessRepo.CountByStatus(ctx, entities.BusinessStatusActive); err != nil {
		return nil, fmt.Errorf("count active: %w", err)
	}
	if stats.PendingCount, err = u.businessRepo.CountByStatus(ctx, entities.BusinessStatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	if stats.PremiumCount, err = u.businessRepo.CountPremium(ctx); err != nil {
		return nil, fmt.Errorf("count premium: %w", err)
	}
	stats.LatestPending, err = u.businessRepo.List(ctx, entities.BusinessFilter{
		Status: entities.BusinessStatusPending,
		Limit:  dashboardPendingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("latest pending: %w", err)
	}
	stats.UpcomingEvents, err = u.eventRepo.ListUpcoming(ctx, u.now(), dashboardUpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	return &stats, nil
}

func parseEventTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range eventTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func optionalFloat(s string) (null.Float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Float64{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float64{}, err
	}
	return null.Float64From(f), nil
}
