package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/response"
)

type designService interface {
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error)
	GetDesign(ctx context.Context, ownerID, businessID uuid.UUID) (*entities.DesignView, error)
	SaveDesign(ctx context.Context, ownerID, businessID uuid.UUID, input entities.SaveDesignInput) error
}

type galleryService interface {
	List(ctx context.Context, ownerID, businessID uuid.UUID) ([]entities.BusinessImage, error)
	Reorder(ctx context.Context, ownerID, businessID uuid.UUID, from, to int) ([]entities.BusinessImage, error)
	ReplaceOrder(ctx context.Context, ownerID, businessID uuid.UUID, ids []uuid.UUID) ([]entities.BusinessImage, error)
	UpdateMetadata(ctx context.Context, ownerID, businessID, imageID uuid.UUID, input entities.UpdateImageMetadataInput) error
	Upload(ctx context.Context, ownerID, businessID uuid.UUID, files []entities.UploadFile) (*entities.UploadResult, error)
	Delete(ctx context.Context, ownerID, businessID, imageID uuid.UUID) error
}

type imageUploader interface {
	UploadImage(ctx context.Context, ownerID, businessID uuid.UUID, kind entities.ImageKind, file entities.UploadFile) (*entities.UploadedImage, error)
}

type previewService interface {
	Preview(ctx context.Context, ownerID, businessID uuid.UUID, variant string) ([]byte, error)
	PublicProfile(ctx context.Context, businessID uuid.UUID) ([]byte, error)
}

// PortalHandler serves the business owner portal: design editor, gallery and uploads
type PortalHandler struct {
	designUsecase  designService
	galleryUsecase galleryService
	uploadUsecase  imageUploader
	previewUsecase previewService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(designUsecase designService, galleryUsecase galleryService, uploadUsecase imageUploader, previewUsecase previewService) *PortalHandler {
	return &PortalHandler{
		designUsecase:  designUsecase,
		galleryUsecase: galleryUsecase,
		uploadUsecase:  uploadUsecase,
		previewUsecase: previewUsecase,
	}
}

// ownerAndBusiness resolves the caller and the :id business parameter
func ownerAndBusiness(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := currentUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	businessID, ok := uuidParam(c, "id", "business")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, businessID, true
}

// ListBusinesses lists the caller's businesses
// GET /api/v1/portal/businesses
func (h *PortalHandler) ListBusinesses(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	businesses, err := h.designUsecase.ListOwned(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if businesses == nil {
		businesses = []*entities.Business{}
	}

	response.Success(c, http.StatusOK, gin.H{"businesses": businesses})
}

// GetDesign loads the design editor
// GET /api/v1/portal/businesses/:id/design
func (h *PortalHandler) GetDesign(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	view, err := h.designUsecase.GetDesign(c.Request.Context(), ownerID, businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// SaveDesign stores config, logo and hero image in one update
// PUT /api/v1/portal/businesses/:id/design
func (h *PortalHandler) SaveDesign(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var input entities.SaveDesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.designUsecase.SaveDesign(c.Request.Context(), ownerID, businessID, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "¡Diseño guardado!"})
}

// Preview renders the profile page, ?variant= overrides the stored layout
// GET /api/v1/portal/businesses/:id/preview
func (h *PortalHandler) Preview(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	page, err := h.previewUsecase.Preview(c.Request.Context(), ownerID, businessID, c.Query("variant"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.HTML(c, http.StatusOK, page)
}

// UploadImage stores a logo, cover or background image
// POST /api/v1/portal/businesses/:id/uploads/:kind
func (h *PortalHandler) UploadImage(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("File is required"))
		return
	}

	kind := entities.ImageKind(c.Param("kind"))
	uploaded, err := h.uploadUsecase.UploadImage(c.Request.Context(), ownerID, businessID, kind, uploadFile(fh))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, uploaded)
}

// ListGallery lists gallery images in display order
// GET /api/v1/portal/businesses/:id/gallery
func (h *PortalHandler) ListGallery(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	images, err := h.galleryUsecase.List(c.Request.Context(), ownerID, businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"images": nonNilImages(images)})
}

// UploadGallery appends the files[] parts to the gallery. Invalid files are
// reported as skipped and do not fail the batch.
// POST /api/v1/portal/businesses/:id/gallery
func (h *PortalHandler) UploadGallery(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Multipart form is required"))
		return
	}
	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		response.Error(c, domainerrors.BadRequest("At least one file is required"))
		return
	}

	files := make([]entities.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	result, err := h.galleryUsecase.Upload(c.Request.Context(), ownerID, businessID, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Uploaded == nil {
		result.Uploaded = []entities.BusinessImage{}
	}
	if result.Skipped == nil {
		result.Skipped = []entities.SkippedFile{}
	}

	response.Success(c, http.StatusOK, result)
}

// ReorderGallery moves one image
// POST /api/v1/portal/businesses/:id/gallery/reorder
func (h *PortalHandler) ReorderGallery(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var input entities.ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	images, err := h.galleryUsecase.Reorder(c.Request.Context(), ownerID, businessID, *input.From, *input.To)
	h.writeOrder(c, images, err)
}

// ReplaceGalleryOrder applies a complete ordering
// PUT /api/v1/portal/businesses/:id/gallery/order
func (h *PortalHandler) ReplaceGalleryOrder(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var input entities.ReplaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if input.ImageIDs == nil {
		response.Error(c, domainerrors.BadRequest("image_ids is required"))
		return
	}

	images, err := h.galleryUsecase.ReplaceOrder(c.Request.Context(), ownerID, businessID, input.ImageIDs)
	h.writeOrder(c, images, err)
}

// writeOrder answers a reorder. A failed write still carries the stored order
// so the client can resync.
func (h *PortalHandler) writeOrder(c *gin.Context, images []entities.BusinessImage, err error) {
	if err != nil {
		if images != nil {
			response.ErrorWithData(c, err, gin.H{"images": images})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"images": nonNilImages(images)})
}

// UpdateImage edits title and description
// PATCH /api/v1/portal/businesses/:id/gallery/:imageId
func (h *PortalHandler) UpdateImage(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "imageId", "image")
	if !ok {
		return
	}

	var input entities.UpdateImageMetadataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.galleryUsecase.UpdateMetadata(c.Request.Context(), ownerID, businessID, imageID, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Imagen actualizada"})
}

// DeleteImage removes an image and its stored object
// DELETE /api/v1/portal/businesses/:id/gallery/:imageId
func (h *PortalHandler) DeleteImage(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "imageId", "image")
	if !ok {
		return
	}

	if err := h.galleryUsecase.Delete(c.Request.Context(), ownerID, businessID, imageID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func nonNilImages(images []entities.BusinessImage) []entities.BusinessImage {
	if images == nil {
		return []entities.BusinessImage{}
	}
	return images
}
