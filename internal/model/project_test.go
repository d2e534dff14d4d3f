package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectState(t *testing.T) {
	started := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		project Project
		stats   *StreakStats
		want    ProjectState
	}{
		{
			name:    "no start date is pending",
			project: Project{TargetDays: 7},
			stats:   &StreakStats{},
			want:    ProjectStatePending,
		},
		{
			name:    "started with no stats row is active",
			project: Project{TargetDays: 7, StartedAt: &started},
			stats:   nil,
			want:    ProjectStateActive,
		},
		{
			name:    "streak below target is active",
			project: Project{TargetDays: 7, StartedAt: &started},
			stats:   &StreakStats{CurrentStreak: 6},
			want:    ProjectStateActive,
		},
		{
			name:    "streak at target is completed",
			project: Project{TargetDays: 7, StartedAt: &started},
			stats:   &StreakStats{CurrentStreak: 7},
			want:    ProjectStateCompleted,
		},
		{
			name:    "streak past target stays completed",
			project: Project{TargetDays: 7, StartedAt: &started},
			stats:   &StreakStats{CurrentStreak: 9},
			want:    ProjectStateCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.State(tt.stats))
		})
	}
}

func TestProgressPostImage(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	width := 800

	post := &ProgressPost{}
	assert.False(t, post.HasImage())
	assert.Nil(t, post.Image())

	post.SetImage(&ImageMeta{
		URL:      "https://cdn.example.com/p/1.png",
		Filename: "1.png",
		Size:     2048,
		MimeType: "image/png",
		Width:    &width,
	}, now)

	assert.True(t, post.HasImage())
	meta := post.Image()
	assert.Equal(t, "https://cdn.example.com/p/1.png", meta.URL)
	assert.Equal(t, int64(2048), meta.Size)
	assert.Equal(t, "image/png", meta.MimeType)
	assert.Equal(t, &width, meta.Width)
	assert.Nil(t, meta.Height)
	assert.Equal(t, &now, post.ImageUploadedAt)
}
