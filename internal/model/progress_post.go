package model

import (
	"time"
)

// ProgressPost is one entry in the append-only progress log. Posts are
// created only through the posting rules and are never deleted; soft-deleting
// the project just hides them.
type ProgressPost struct {
	ID        string    `db:"id" json:"id"`
	ProjectID string    `db:"project_id" json:"projectId"`
	UserID    string    `db:"user_id" json:"userId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Optional image metadata, stored opaquely. The image bytes live in the
	// object store; the engine only keeps the tuple the upload collaborator
	// hands back.
	ImageURL        *string    `db:"image_url" json:"imageUrl,omitempty"`
	ImageFilename   *string    `db:"image_filename" json:"imageFilename,omitempty"`
	ImageSize       *int64     `db:"image_size" json:"imageSize,omitempty"`
	ImageMimeType   *string    `db:"image_mime_type" json:"imageMimeType,omitempty"`
	ImageWidth      *int       `db:"image_width" json:"imageWidth,omitempty"`
	ImageHeight     *int       `db:"image_height" json:"imageHeight,omitempty"`
	ImageUploadedAt *time.Time `db:"image_uploaded_at" json:"imageUploadedAt,omitempty"`
}

// ImageMeta is the opaque image tuple attached to a post.
type ImageMeta struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
}

// HasImage reports whether an image tuple is attached.
func (p *ProgressPost) HasImage() bool {
	return p.ImageURL != nil
}

// Image returns the attached image tuple, or nil.
func (p *ProgressPost) Image() *ImageMeta {
	if !p.HasImage() {
		return nil
	}
	meta := &ImageMeta{
		URL:    *p.ImageURL,
		Width:  p.ImageWidth,
		Height: p.ImageHeight,
	}
	if p.ImageFilename != nil {
		meta.Filename = *p.ImageFilename
	}
	if p.ImageSize != nil {
		meta.Size = *p.ImageSize
	}
	if p.ImageMimeType != nil {
		meta.MimeType = *p.ImageMimeType
	}
	return meta
}

// SetImage attaches an image tuple, stamping the upload time.
func (p *ProgressPost) SetImage(meta *ImageMeta, now time.Time) {
	if meta == nil {
		return
	}
	p.ImageURL = &meta.URL
	p.ImageFilename = &meta.Filename
	p.ImageSize = &meta.Size
	p.ImageMimeType = &meta.MimeType
	p.ImageWidth = meta.Width
	p.ImageHeight = meta.Height
	p.ImageUploadedAt = &now
}

// ClearImage detaches the image tuple.
func (p *ProgressPost) ClearImage() {
	p.ImageURL = nil
	p.ImageFilename = nil
	p.ImageSize = nil
	p.ImageMimeType = nil
	p.ImageWidth = nil
	p.ImageHeight = nil
	p.ImageUploadedAt = nil
}
