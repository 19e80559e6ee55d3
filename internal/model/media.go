package model

import "errors"

// UploadResult carries the public URL and storage key of a stored blob.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Media constraints. Every accepted image is normalized to JPEG before
// storage, so the key extension is fixed.
const (
	MaxImageSizeBytes = 10 * 1024 * 1024
	PostImageFolder   = "posts"
	AvatarFolder      = "avatars"
	ImageExt          = ".jpg"
	ContentTypeJPEG   = "image/jpeg"

	AvatarWidth  = 200
	AvatarHeight = 200
)

// IsAllowedImageType reports whether the uploaded content type is accepted.
func IsAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("unsupported image type")
	ErrInvalidBase64    = errors.New("invalid base64 image payload")
)

// Media API error codes
const (
	CodeFileTooLarge     = "FILE_TOO_LARGE"
	CodeInvalidImageType = "INVALID_IMAGE_TYPE"
)
