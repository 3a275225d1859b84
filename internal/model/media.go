package model

import "errors"

// UploadResult is the stored object's public URL and storage key.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload constraints for post thumbnails and profile images.
const (
	MaxImageSizeBytes = 5 * 1024 * 1024
	MaxImageWidth     = 1600
	ImageFolder       = "images"
	ContentTypeJPEG   = "image/jpeg"
)

var (
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrInvalidImageType = errors.New("unsupported image type")

	// ErrUpstream is returned when an external collaborator (media host,
	// mail relay) fails; it maps to 502 at the boundary.
	ErrUpstream = errors.New("upstream service failure")
)
