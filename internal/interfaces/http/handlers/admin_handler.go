package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/response"
)

type adminService interface {
	ApproveBusiness(ctx context.Context, id uuid.UUID) error
	TogglePremium(ctx context.Context, id uuid.UUID, isPremium bool) error
	UpdateBusiness(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error
	ListBusinesses(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	CreateEvent(ctx context.Context, input entities.CreateEventInput) (*entities.Event, error)
	ListEvents(ctx context.Context) ([]*entities.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	DashboardStats(ctx context.Context) (*entities.DashboardStats, error)
}

type posterUploader interface {
	UploadPoster(ctx context.Context, file entities.UploadFile) (*entities.UploadedImage, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase  adminService
	uploadUsecase posterUploader
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService, uploadUsecase posterUploader) *AdminHandler {
	return &AdminHandler{
		adminUsecase:  adminUsecase,
		uploadUsecase: uploadUsecase,
	}
}

// Stats returns the dashboard counters and recent pending businesses
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ListBusinesses lists businesses, optionally by status
// GET /api/v1/admin/businesses
func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	filter := entities.BusinessFilter{
		Status: entities.BusinessStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, domainerrors.BadRequest("Invalid limit"))
			return
		}
		filter.Limit = limit
	}

	businesses, err := h.adminUsecase.ListBusinesses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if businesses == nil {
		businesses = []*entities.Business{}
	}

	response.Success(c, http.StatusOK, gin.H{"businesses": businesses})
}

// GetBusiness returns a single business
// GET /api/v1/admin/businesses/:id
func (h *AdminHandler) GetBusiness(c *gin.Context) {
	id, ok := uuidParam(c, "id", "business")
	if !ok {
		return
	}

	business, err := h.adminUsecase.GetBusiness(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"business": business})
}

// UpdateBusiness edits business fields
// PUT /api/v1/admin/businesses/:id
func (h *AdminHandler) UpdateBusiness(c *gin.Context) {
	id, ok := uuidParam(c, "id", "business")
	if !ok {
		return
	}

	var input entities.UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.UpdateBusiness(c.Request.Context(), id, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Negocio actualizado"})
}

// ApproveBusiness activates a pending listing
// POST /api/v1/admin/businesses/:id/approve
func (h *AdminHandler) ApproveBusiness(c *gin.Context) {
	id, ok := uuidParam(c, "id", "business")
	if !ok {
		return
	}

	if err := h.adminUsecase.ApproveBusiness(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Negocio aprobado"})
}

// SetPremium turns the premium plan on or off
// POST /api/v1/admin/businesses/:id/premium
func (h *AdminHandler) SetPremium(c *gin.Context) {
	id, ok := uuidParam(c, "id", "business")
	if !ok {
		return
	}

	var input struct {
		IsPremium *bool `json:"is_premium" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.TogglePremium(c.Request.Context(), id, *input.IsPremium); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_premium": *input.IsPremium})
}

// ListEvents lists events, newest first
// GET /api/v1/admin/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.adminUsecase.ListEvents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if events == nil {
		events = []*entities.Event{}
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// CreateEvent accepts the event form as JSON or form data
// POST /api/v1/admin/events
func (h *AdminHandler) CreateEvent(c *gin.Context) {
	var input entities.CreateEventInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	event, err := h.adminUsecase.CreateEvent(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": event})
}

// DeleteEvent removes an event
// DELETE /api/v1/admin/events/:id
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id, ok := uuidParam(c, "id", "event")
	if !ok {
		return
	}

	if err := h.adminUsecase.DeleteEvent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPoster stores an event poster and returns its public URL
// POST /api/v1/admin/uploads/poster
func (h *AdminHandler) UploadPoster(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("File is required"))
		return
	}

	uploaded, err := h.uploadUsecase.UploadPoster(c.Request.Context(), uploadFile(fh))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, uploaded)
}
