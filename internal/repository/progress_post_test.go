package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/db/dbtest"
	"github.com/streakpost/streakpost/internal/model"
)

func seedProject(t *testing.T, projects ProjectRepository, stats StreakStatsRepository) *model.Project {
	t.Helper()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	project := &model.Project{
		ID:         uuid.New().String(),
		UserID:     "user-1",
		Name:       "Daily sketching",
		CategoryID: "art",
		TargetDays: 7,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, projects.Create(project))
	require.NoError(t, stats.Create(&model.StreakStats{
		ID:        uuid.New().String(),
		UserID:    project.UserID,
		ProjectID: project.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return project
}

func newPost(project *model.Project, at time.Time) *model.ProgressPost {
	return &model.ProgressPost{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		UserID:    project.UserID,
		Content:   "made progress",
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestCreateWithStatsCommitsPostAndStatsTogether(t *testing.T) {
	conn := dbtest.New(t)
	posts := NewProgressPostRepository(conn)
	projects := NewProjectRepository(conn)
	statsRepo := NewStreakStatsRepository(conn)
	project := seedProject(t, projects, statsRepo)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stats, err := posts.CreateWithStats(newPost(project, at), clock.DayWindow(at), 5, func(s *model.StreakStats) {
		s.TotalPosts++
		s.CurrentStreak++
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPosts)

	stored, err := statsRepo.ByProject(project.UserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalPosts)
	assert.Equal(t, 1, stored.CurrentStreak)

	count, err := posts.Count(project.UserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateWithStatsEnforcesCap(t *testing.T) {
	conn := dbtest.New(t)
	posts := NewProgressPostRepository(conn)
	projects := NewProjectRepository(conn)
	statsRepo := NewStreakStatsRepository(conn)
	project := seedProject(t, projects, statsRepo)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day := clock.DayWindow(at)

	for i := 0; i < 2; i++ {
		_, err := posts.CreateWithStats(newPost(project, at.Add(time.Duration(i)*time.Minute)), day, 2, func(s *model.StreakStats) {
			s.TotalPosts++
		})
		require.NoError(t, err)
	}

	_, err := posts.CreateWithStats(newPost(project, at.Add(time.Hour)), day, 2, func(s *model.StreakStats) {
		s.TotalPosts++
	})
	assert.ErrorIs(t, err, ErrDailyCapReached)

	// The rejected attempt rolled back: no post row, counters unchanged.
	count, err := posts.Count(project.UserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := statsRepo.ByProject(project.UserID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TotalPosts)
}

func TestCreateWithStatsFrozen(t *testing.T) {
	conn := dbtest.New(t)
	posts := NewProgressPostRepository(conn)
	projects := NewProjectRepository(conn)
	statsRepo := NewStreakStatsRepository(conn)
	project := seedProject(t, projects, statsRepo)

	require.NoError(t, statsRepo.SetFrozen(project.UserID, project.ID, true))

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := posts.CreateWithStats(newPost(project, at), clock.DayWindow(at), 5, func(s *model.StreakStats) {
		s.TotalPosts++
	})
	assert.ErrorIs(t, err, ErrStatsFrozen)
}

func TestCreateWithStatsMissingStatsRow(t *testing.T) {
	conn := dbtest.New(t)
	posts := NewProgressPostRepository(conn)
	projects := NewProjectRepository(conn)
	statsRepo := NewStreakStatsRepository(conn)
	project := seedProject(t, projects, statsRepo)

	orphan := &model.ProgressPost{
		ID:        uuid.New().String(),
		ProjectID: "no-such-project",
		UserID:    project.UserID,
		Content:   "made progress",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := posts.CreateWithStats(orphan, clock.DayWindow(time.Now()), 5, func(s *model.StreakStats) {})
	assert.ErrorIs(t, err, ErrStatsNotFound)
}
