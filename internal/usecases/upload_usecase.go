package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/storage"
	"github.com/LexovateAyacucho/qhoar-web/pkg/crypto"
)

var generateObjectKey = crypto.GenerateObjectKey

// inspectImage enforces the size limit and sniffs the content type. The
// returned reader is positioned at the start of the file.
func inspectImage(file entities.UploadFile, maxBytes int64) (string, io.ReadSeekCloser, error) {
	if file.Size > maxBytes {
		return "", nil, fmt.Errorf("%w: %d bytes, limit %d", domainerrors.ErrFileTooLarge, file.Size, maxBytes)
	}
	if file.ContentType != "" && !strings.HasPrefix(file.ContentType, "image/") {
		return "", nil, fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedMedia, file.ContentType)
	}

	body, err := file.Open()
	if err != nil {
		return "", nil, err
	}
	detected, err := mimetype.DetectReader(body)
	if err != nil {
		body.Close()
		return "", nil, err
	}
	contentType := detected.String()
	if !strings.HasPrefix(contentType, "image/") {
		body.Close()
		return "", nil, fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedMedia, contentType)
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		body.Close()
		return "", nil, err
	}
	return contentType, body, nil
}

// putImage validates and stores one file, returning its key and public URL
func putImage(ctx context.Context, store storage.ObjectStore, bucket string, file entities.UploadFile, maxBytes int64) (string, string, error) {
	contentType, body, err := inspectImage(file, maxBytes)
	if err != nil {
		return "", "", err
	}
	defer body.Close()

	key, err := generateObjectKey(file.Name)
	if err != nil {
		return "", "", err
	}
	if err := store.Upload(ctx, bucket, key, contentType, body); err != nil {
		return "", "", fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return key, store.PublicURL(bucket, key), nil
}

// UploadUsecase stores single images: logos, covers, backgrounds and event posters
type UploadUsecase struct {
	businessRepo repositories.BusinessRepository
	store        storage.ObjectStore
	maxBytes     int64
}

func NewUploadUsecase(businessRepo repositories.BusinessRepository, store storage.ObjectStore, maxBytes int64) *UploadUsecase {
	if maxBytes <= 0 {
		maxBytes = entities.MaxImageBytes
	}
	return &UploadUsecase{
		businessRepo: businessRepo,
		store:        store,
		maxBytes:     maxBytes,
	}
}

// UploadImage stores a design image of a business the owner may edit.
// Posters go through UploadPoster.
func (u *UploadUsecase) UploadImage(ctx context.Context, ownerID, businessID uuid.UUID, kind entities.ImageKind, file entities.UploadFile) (*entities.UploadedImage, error) {
	bucket, ok := kind.Bucket()
	if !ok {
		return nil, domainerrors.BadRequest("unknown image kind")
	}
	if kind == entities.ImageKindPoster {
		return nil, domainerrors.Forbidden("poster uploads are reserved to admins")
	}
	if _, err := ownedPremiumBusiness(ctx, u.businessRepo, ownerID, businessID); err != nil {
		return nil, err
	}
	return u.put(ctx, bucket, file)
}

// UploadPoster stores an event poster
func (u *UploadUsecase) UploadPoster(ctx context.Context, file entities.UploadFile) (*entities.UploadedImage, error) {
	return u.put(ctx, entities.BucketEventPosters, file)
}

func (u *UploadUsecase) put(ctx context.Context, bucket string, file entities.UploadFile) (*entities.UploadedImage, error) {
	key, publicURL, err := putImage(ctx, u.store, bucket, file, u.maxBytes)
	if err != nil {
		return nil, err
	}
	return &entities.UploadedImage{URL: publicURL, Bucket: bucket, Key: key}, nil
}
