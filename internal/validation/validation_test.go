package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streakpost/streakpost/internal/model"
)

func TestValidatePostContent(t *testing.T) {
	assert.NoError(t, ValidatePostContent("shipped the login page", 5000))
	assert.Error(t, ValidatePostContent("", 5000))
	assert.Error(t, ValidatePostContent("   ", 5000))
	assert.Error(t, ValidatePostContent(strings.Repeat("a", 5001), 5000))
	assert.NoError(t, ValidatePostContent(strings.Repeat("a", 5000), 5000))
}

func TestValidateProjectName(t *testing.T) {
	assert.NoError(t, ValidateProjectName("100 days of Go"))
	assert.Error(t, ValidateProjectName(""))
	assert.Error(t, ValidateProjectName(strings.Repeat("x", 201)))
}

func TestValidateImageMeta(t *testing.T) {
	valid := func() *model.ImageMeta {
		return &model.ImageMeta{
			URL:      "https://cdn.example.com/p/1.png",
			Filename: "1.png",
			Size:     2048,
			MimeType: "image/png",
		}
	}

	assert.NoError(t, ValidateImageMeta(nil), "no image is fine")
	assert.NoError(t, ValidateImageMeta(valid()))

	tests := []struct {
		name   string
		modify func(*model.ImageMeta)
	}{
		{"relative url", func(m *model.ImageMeta) { m.URL = "/p/1.png" }},
		{"missing filename", func(m *model.ImageMeta) { m.Filename = "" }},
		{"zero size", func(m *model.ImageMeta) { m.Size = 0 }},
		{"oversized", func(m *model.ImageMeta) { m.Size = MaxImageSize + 1 }},
		{"unsupported mime type", func(m *model.ImageMeta) { m.MimeType = "application/pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := valid()
			tt.modify(meta)
			assert.Error(t, ValidateImageMeta(meta))
		})
	}
}
