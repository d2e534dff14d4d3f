package validation

import (
	"fmt"
	"strings"

	"github.com/streakpost/streakpost/internal/model"
)

// MaxImageSize is the largest accepted image attachment (10 MB), matching
// the upload collaborator's limit.
const MaxImageSize = 10 << 20

var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImageMeta validates the opaque image tuple attached to a post.
// The engine never sees image bytes; it only sanity-checks the metadata the
// upload collaborator hands back.
func ValidateImageMeta(meta *model.ImageMeta) error {
	if meta == nil {
		return nil
	}

	if !strings.HasPrefix(meta.URL, "http://") && !strings.HasPrefix(meta.URL, "https://") {
		return fmt.Errorf("image url must be absolute")
	}

	if meta.Filename == "" {
		return fmt.Errorf("image filename is required")
	}

	if meta.Size <= 0 || meta.Size > MaxImageSize {
		return fmt.Errorf("image size must be between 1 byte and %d bytes", MaxImageSize)
	}

	if !allowedImageMimeTypes[meta.MimeType] {
		return fmt.Errorf("unsupported image type %q", meta.MimeType)
	}

	return nil
}

// ValidateImageUpload checks a declared upload before a presigned URL is
// issued for it.
func ValidateImageUpload(contentType string, size int64) error {
	if !allowedImageMimeTypes[contentType] {
		return fmt.Errorf("unsupported image type %q", contentType)
	}

	if size <= 0 || size > MaxImageSize {
		return fmt.Errorf("image size must be between 1 byte and %d bytes", MaxImageSize)
	}

	return nil
}
