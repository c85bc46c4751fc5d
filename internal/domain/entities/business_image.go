package entities

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes is the per-file upload limit
const MaxImageBytes = 5 << 20

// BusinessImage is one gallery entry. OrderIndex defines display order.
type BusinessImage struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	ImageURL    string    `json:"image_url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadFile is one file of a multi-file upload
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadSeekCloser, error)
}

// SkippedFile explains why a file produced no gallery record
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult summarizes a gallery upload batch
type UploadResult struct {
	Uploaded []BusinessImage `json:"uploaded"`
	Skipped  []SkippedFile   `json:"skipped"`
}

// UpdateImageMetadataInput holds the inline-edit fields
type UpdateImageMetadataInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReorderInput moves the item at From to To
type ReorderInput struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// ReplaceOrderInput lists every image id in the desired order. An empty
// list is valid for an empty gallery; a missing one is not.
type ReplaceOrderInput struct {
	ImageIDs []uuid.UUID `json:"image_ids" binding:"omitempty"`
}
