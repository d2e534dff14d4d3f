package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/db/dbtest"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

const testUser = "user-1"

// base is an arbitrary mid-morning instant; tests derive challenge days
// from it with day().
var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

type fixture struct {
	projects *ProjectService
	posting  *PostingService
	streaks  *StreakService
	calendar *CalendarService
	badges   *BadgeService

	projectRepo repository.ProjectRepository
	postRepo    repository.ProgressPostRepository
	statsRepo   repository.StreakStatsRepository
	badgeRepo   repository.BadgeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.New(t)

	projectRepo := repository.NewProjectRepository(conn)
	postRepo := repository.NewProgressPostRepository(conn)
	statsRepo := repository.NewStreakStatsRepository(conn)
	badgeRepo := repository.NewBadgeRepository(conn)
	userBadgeRepo := repository.NewUserBadgeRepository(conn)

	notifier := NewNotifier(&config.Config{AppURL: "http://localhost:8080"})
	badges := NewBadgeService(badgeRepo, userBadgeRepo, statsRepo, notifier)

	return &fixture{
		projects:    NewProjectService(projectRepo, statsRepo),
		posting:     NewPostingService(projectRepo, postRepo, statsRepo, badges, notifier, nil, 5, 5000),
		streaks:     NewStreakService(projectRepo, postRepo, statsRepo),
		calendar:    NewCalendarService(projectRepo, postRepo),
		badges:      badges,
		projectRepo: projectRepo,
		postRepo:    postRepo,
		statsRepo:   statsRepo,
		badgeRepo:   badgeRepo,
	}
}

// startedProject creates a project and starts its clock at the given time.
func (f *fixture) startedProject(t *testing.T, start time.Time, targetDays int) *model.Project {
	t.Helper()
	project, err := f.projects.Create(testUser, "Daily sketching", "One sketch a day", "art", targetDays)
	require.NoError(t, err)
	project, err = f.projects.Start(testUser, project.ID, start)
	require.NoError(t, err)
	return project
}

// post records a progress post at the given time and fails the test on any
// rule rejection.
func (f *fixture) post(t *testing.T, projectID string, at time.Time) *PostResult {
	t.Helper()
	result, err := f.posting.CreatePost(testUser, projectID, "made progress", nil, "", at)
	require.NoError(t, err)
	return result
}

// seedBadges inserts one badge per streak-day threshold.
func (f *fixture) seedBadges(t *testing.T, thresholds ...int) []*model.Badge {
	t.Helper()
	out := make([]*model.Badge, 0, len(thresholds))
	for _, c := range thresholds {
		badge := &model.Badge{
			ID:        uuid.New().String(),
			Name:      fmt.Sprintf("%d-day streak", c),
			Icon:      "🔥",
			Criteria:  c,
			CreatedAt: base,
		}
		require.NoError(t, f.badgeRepo.Create(badge))
		out = append(out, badge)
	}
	return out
}
