package usecases

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/storage"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/metrics"
	"github.com/LexovateAyacucho/qhoar-web/pkg/utils"
)

// GalleryUsecase manages the ordered photo gallery of premium businesses.
// Reorders, appends and deletes of one business are serialized by a redis lock.
type GalleryUsecase struct {
	businessRepo repositories.BusinessRepository
	imageRepo    repositories.BusinessImageRepository
	store        storage.ObjectStore
	locker       Locker
	maxBytes     int64
}

func NewGalleryUsecase(
	businessRepo repositories.BusinessRepository,
	imageRepo repositories.BusinessImageRepository,
	store storage.ObjectStore,
	locker Locker,
	maxBytes int64,
) *GalleryUsecase {
	if maxBytes <= 0 {
		maxBytes = entities.MaxImageBytes
	}
	return &GalleryUsecase{
		businessRepo: businessRepo,
		imageRepo:    imageRepo,
		store:        store,
		locker:       locker,
		maxBytes:     maxBytes,
	}
}

// List returns the gallery in display order
func (u *GalleryUsecase) List(ctx context.Context, ownerID, businessID uuid.UUID) ([]entities.BusinessImage, error) {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return nil, err
	}
	return u.imageRepo.ListByBusiness(ctx, businessID)
}

// Reorder moves the image at from to position to and renumbers the whole
// gallery 0..N-1 in one write. When the write fails the stored order is
// returned along with the error.
func (u *GalleryUsecase) Reorder(ctx context.Context, ownerID, businessID uuid.UUID, from, to int) ([]entities.BusinessImage, error) {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return nil, err
	}
	release, err := u.lock(ctx, businessID)
	if err != nil {
		return nil, err
	}
	defer release()

	images, err := u.imageRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(images) || to < 0 || to >= len(images) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("positions must be between 0 and %d", len(images)-1))
	}

	moved := images[from]
	images = slices.Delete(images, from, from+1)
	images = slices.Insert(images, to, moved)
	return u.persistOrder(ctx, businessID, images)
}

// ReplaceOrder applies a complete ordering. ids must list every image exactly once.
func (u *GalleryUsecase) ReplaceOrder(ctx context.Context, ownerID, businessID uuid.UUID, ids []uuid.UUID) ([]entities.BusinessImage, error) {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return nil, err
	}
	release, err := u.lock(ctx, businessID)
	if err != nil {
		return nil, err
	}
	defer release()

	images, err := u.imageRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(images) {
		return nil, domainerrors.BadRequest("image_ids must list every gallery image")
	}
	if len(images) == 0 {
		return []entities.BusinessImage{}, nil
	}
	byID := make(map[uuid.UUID]entities.BusinessImage, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	ordered := make([]entities.BusinessImage, 0, len(ids))
	for _, id := range ids {
		img, ok := byID[id]
		if !ok {
			return nil, domainerrors.BadRequest("image_ids must list every gallery image exactly once")
		}
		delete(byID, id)
		ordered = append(ordered, img)
	}
	return u.persistOrder(ctx, businessID, ordered)
}

func (u *GalleryUsecase) persistOrder(ctx context.Context, businessID uuid.UUID, images []entities.BusinessImage) ([]entities.BusinessImage, error) {
	for i := range images {
		images[i].OrderIndex = i
	}
	if err := u.imageRepo.UpsertOrder(ctx, images); err != nil {
		logger.Error(ctx, "Failed to persist gallery order", zap.String("business_id", businessID.String()), zap.Error(err))
		stored, listErr := u.imageRepo.ListByBusiness(ctx, businessID)
		if listErr != nil {
			return nil, errors.Join(err, listErr)
		}
		return stored, fmt.Errorf("persist gallery order: %w", err)
	}
	return images, nil
}

// UpdateMetadata saves title and description of one image
func (u *GalleryUsecase) UpdateMetadata(ctx context.Context, ownerID, businessID, imageID uuid.UUID, input entities.UpdateImageMetadataInput) error {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return err
	}
	if err := u.imageRepo.UpdateMetadata(ctx, businessID, imageID, input.Title, input.Description); err != nil {
		return fmt.Errorf("update image metadata: %w", err)
	}
	return nil
}

// Upload stores each file in turn and appends it to the gallery. Rejected or
// failed files are reported in Skipped and do not stop the batch.
func (u *GalleryUsecase) Upload(ctx context.Context, ownerID, businessID uuid.UUID, files []entities.UploadFile) (*entities.UploadResult, error) {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return nil, err
	}

	result := &entities.UploadResult{
		Uploaded: []entities.BusinessImage{},
		Skipped:  []entities.SkippedFile{},
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		image, err := u.uploadOne(ctx, businessID, file)
		if err != nil {
			outcome := metrics.UploadFailed
			if errors.Is(err, domainerrors.ErrFileTooLarge) || errors.Is(err, domainerrors.ErrUnsupportedMedia) {
				outcome = metrics.UploadRejected
				logger.Warn(ctx, "Gallery file rejected", zap.String("file", file.Name), zap.Error(err))
			} else {
				logger.Error(ctx, "Gallery file upload failed", zap.String("file", file.Name), zap.Error(err))
			}
			metrics.GalleryUploads.WithLabelValues(outcome).Inc()
			result.Skipped = append(result.Skipped, entities.SkippedFile{Name: file.Name, Reason: err.Error()})
			continue
		}
		metrics.GalleryUploads.WithLabelValues(metrics.UploadAccepted).Inc()
		result.Uploaded = append(result.Uploaded, *image)
	}
	return result, nil
}

func (u *GalleryUsecase) uploadOne(ctx context.Context, businessID uuid.UUID, file entities.UploadFile) (*entities.BusinessImage, error) {
	key, publicURL, err := putImage(ctx, u.store, entities.BucketBusinessGallery, file, u.maxBytes)
	if err != nil {
		return nil, err
	}

	image, err := u.appendImage(ctx, businessID, publicURL)
	if err != nil {
		u.removeObject(ctx, key)
		return nil, err
	}
	return image, nil
}

// appendImage inserts the row at the end of the gallery while holding the lock
func (u *GalleryUsecase) appendImage(ctx context.Context, businessID uuid.UUID, publicURL string) (*entities.BusinessImage, error) {
	release, err := u.lock(ctx, businessID)
	if err != nil {
		return nil, err
	}
	defer release()

	next, err := u.imageRepo.NextOrderIndex(ctx, businessID)
	if err != nil {
		return nil, err
	}
	image := &entities.BusinessImage{
		ID:         utils.GenerateUUIDv7(),
		BusinessID: businessID,
		ImageURL:   publicURL,
		OrderIndex: next,
	}
	if err := u.imageRepo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("save gallery image: %w", err)
	}
	return image, nil
}

func (u *GalleryUsecase) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.store.Remove(context.WithoutCancel(ctx), entities.BucketBusinessGallery, key); err != nil {
		logger.Warn(ctx, "Failed to remove gallery object", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes the stored object (best effort) and then the row. Other
// images keep their order_index. It holds the gallery lock so a concurrent
// reorder cannot write the row back.
func (u *GalleryUsecase) Delete(ctx context.Context, ownerID, businessID, imageID uuid.UUID) error {
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return err
	}
	release, err := u.lock(ctx, businessID)
	if err != nil {
		return err
	}
	defer release()

	image, err := u.imageRepo.GetByID(ctx, businessID, imageID)
	if err != nil {
		return err
	}
	u.removeObject(ctx, storage.KeyFromURL(image.ImageURL))
	if err := u.imageRepo.Delete(ctx, businessID, imageID); err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	return nil
}

func (u *GalleryUsecase) lock(ctx context.Context, businessID uuid.UUID) (func(), error) {
	release, err := u.locker.Acquire(ctx, businessID.String())
	if err != nil {
		return nil, lockErr(err)
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "Failed to release gallery lock", zap.String("business_id", businessID.String()), zap.Error(err))
		}
	}, nil
}
