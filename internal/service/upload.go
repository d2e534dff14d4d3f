package service

import (
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/streakpost/streakpost/internal/storage"
	"github.com/streakpost/streakpost/internal/validation"
)

// UploadService issues presigned upload URLs for post images. Clients PUT
// the bytes straight to the object store and attach the resulting metadata
// tuple when they create or update a post.
type UploadService struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) *UploadService {
	return &UploadService{store: store}
}

// PresignedUpload is handed to the client: PUT the file to UploadURL, then
// reference PublicURL in the post's image tuple.
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Presign validates the declared file and returns a presigned PUT URL under
// a per-user, per-project key prefix.
func (s *UploadService) Presign(userID, projectID, filename, contentType string, size int64) (*PresignedUpload, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	err := validation.ValidateImageUpload(contentType, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	key := fmt.Sprintf("progress-images/%s/%s/%d-%s",
		userID, projectID, time.Now().UnixMilli(), sanitizeFilename(filename))

	uploadURL, err := s.store.PresignPut(key, contentType)
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		PublicURL: s.store.PublicURL(key),
		Key:       key,
	}, nil
}

// RemoveByURL deletes the stored object behind a previously issued public
// URL. Failures are logged and swallowed; a dangling object is not worth
// failing the caller's request over.
func (s *UploadService) RemoveByURL(url string) {
	key := s.keyFromURL(url)
	if key == "" {
		return
	}
	err := s.store.Delete(key)
	if err != nil {
		slog.Error("failed to delete stored image", "error", err, "key", key)
	}
}

// keyFromURL recovers the object key from a public URL this service issued.
// URLs from anywhere else yield "".
func (s *UploadService) keyFromURL(url string) string {
	base := s.store.PublicURL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	name = unsafeKeyChars.ReplaceAllString(name, "_")
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return name
}
