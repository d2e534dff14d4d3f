package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

func TestCreateProject(t *testing.T) {
	f := newFixture(t)

	project, err := f.projects.Create(testUser, "Daily sketching", "One sketch a day", "art", 30)
	require.NoError(t, err)
	assert.Nil(t, project.StartedAt)
	assert.Nil(t, project.EndDate)

	// The aggregate row is created alongside, zeroed.
	stats, err := f.statsRepo.ByProject(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.TotalPosts)

	view, err := f.projects.View(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatePending, view.State)
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name       string
		projName   string
		categoryID string
		targetDays int
	}{
		{"empty name", "", "art", 30},
		{"missing category", "Sketching", "", 30},
		{"zero target", "Sketching", "art", 0},
		{"negative target", "Sketching", "art", -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.projects.Create(testUser, tc.projName, "", tc.categoryID, tc.targetDays)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestStartProjectOnce(t *testing.T) {
	f := newFixture(t)
	project, err := f.projects.Create(testUser, "Running", "", "fitness", 30)
	require.NoError(t, err)

	started, err := f.projects.Start(testUser, project.ID, day(0))
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.EndDate)
	// A 30-day challenge starting on day one ends on day thirty.
	assert.Equal(t, clock.StartOfDay(day(29)), *started.EndDate)

	_, err = f.projects.Start(testUser, project.ID, day(1))
	assert.ErrorIs(t, err, ErrAlreadyStarted)

	// The first attempt's clock is untouched.
	again, err := f.projects.ByID(testUser, project.ID)
	require.NoError(t, err)
	assert.True(t, again.StartedAt.Equal(day(0)))
}

func TestExtendProject(t *testing.T) {
	f := newFixture(t)

	// Before start: only the target grows.
	pending, err := f.projects.Create(testUser, "Reading", "", "books", 10)
	require.NoError(t, err)
	pending, err = f.projects.Extend(testUser, pending.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, pending.TargetDays)
	assert.Nil(t, pending.EndDate)

	// After start: the end date shifts with the target.
	active := f.startedProject(t, day(0), 10)
	active, err = f.projects.Extend(testUser, active.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, active.TargetDays)
	assert.Equal(t, clock.StartOfDay(day(14)), *active.EndDate)

	_, err = f.projects.Extend(testUser, active.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExtendReopensCompletedChallenge(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 2)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(1))

	_, err := f.posting.CreatePost(testUser, project.ID, "more", nil, "", day(2))
	require.ErrorIs(t, err, ErrGoalReached)

	_, err = f.projects.Extend(testUser, project.ID, 3)
	require.NoError(t, err)

	r := f.post(t, project.ID, day(2))
	assert.Equal(t, 3, r.Stats.CurrentStreak)
}

func TestDeleteProjectHidesEverything(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))

	require.NoError(t, f.projects.Delete(testUser, project.ID))

	_, err := f.projects.ByID(testUser, project.ID)
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)

	_, err = f.posting.CanPost(testUser, project.ID, day(1))
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)

	_, err = f.streaks.CheckStatus(testUser, project.ID, day(1))
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
}

func TestProjectsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)

	_, err := f.projects.ByID("someone-else", project.ID)
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)

	views, err := f.projects.Projects("someone-else")
	require.NoError(t, err)
	assert.Empty(t, views)
}
