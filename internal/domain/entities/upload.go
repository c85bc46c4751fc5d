package entities

// ImageKind selects the bucket of a single-image upload
type ImageKind string

const (
	ImageKindLogo       ImageKind = "logo"
	ImageKindCover      ImageKind = "cover"
	ImageKindBackground ImageKind = "background"
	ImageKindPoster     ImageKind = "poster"
)

// Storage buckets
const (
	BucketBusinessLogos   = "business-logos"
	BucketBusinessCovers  = "business-covers"
	BucketBusinessGallery = "business-gallery"
	BucketEventPosters    = "events-posters"
)

// Bucket maps a kind to its bucket, ok is false for unknown kinds
func (k ImageKind) Bucket() (string, bool) {
	switch k {
	case ImageKindLogo:
		return BucketBusinessLogos, true
	case ImageKindCover, ImageKindBackground:
		return BucketBusinessCovers, true
	case ImageKindPoster:
		return BucketEventPosters, true
	}
	return "", false
}

// UploadedImage is the response of a single-image upload
type UploadedImage struct {
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}
