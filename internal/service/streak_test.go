package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatusUnbrokenStreak(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))

	// Same day, already posted.
	status, err := f.streaks.CheckStatus(testUser, project.ID, day(0).Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, status.IsStreakBroken)
	assert.True(t, status.HasPostedToday)
	assert.False(t, status.CanPostToday)

	// Next day, nothing posted yet: streak intact, posting open.
	status, err = f.streaks.CheckStatus(testUser, project.ID, day(1))
	require.NoError(t, err)
	assert.False(t, status.IsStreakBroken)
	assert.False(t, status.HasPostedToday)
	assert.True(t, status.CanPostToday)
	assert.Equal(t, 2, status.NextExpectedDay)
}

func TestCheckStatusReportsBreak(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(1))

	// Day 2 is skipped; checking on day 3 reports one missed day.
	status, err := f.streaks.CheckStatus(testUser, project.ID, day(3))
	require.NoError(t, err)
	assert.True(t, status.IsStreakBroken)
	assert.Equal(t, 1, status.MissedDays)
	assert.False(t, status.CanPostToday)

	// The break is advisory: the stored streak keeps its value.
	stats, err := f.statsRepo.ByProject(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestResetRestartsChallenge(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(1))

	reset, err := f.streaks.Reset(testUser, project.ID, day(3))
	require.NoError(t, err)
	require.NotNil(t, reset.StartedAt)
	assert.Equal(t, day(3).UTC(), *reset.StartedAt)

	stats, err := f.statsRepo.ByProject(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Nil(t, stats.LastPostedDate)
	// History survives the reset.
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, 2, stats.TotalPosts)

	// The first post after a reset starts a fresh streak.
	r := f.post(t, project.ID, day(3).Add(time.Hour))
	assert.Equal(t, 1, r.Stats.CurrentStreak)
	assert.Equal(t, 2, r.Stats.LongestStreak)
}

func TestVerifyFreezesOnDrift(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(1))

	// Consistent stats pass.
	require.NoError(t, f.streaks.Verify(testUser, project.ID))

	// Tamper with the aggregate behind the posting path's back.
	stats, err := f.statsRepo.ByProject(testUser, project.ID)
	require.NoError(t, err)
	stats.CurrentStreak = 5
	require.NoError(t, f.statsRepo.Update(stats))

	err = f.streaks.Verify(testUser, project.ID)
	assert.ErrorIs(t, err, ErrConsistency)

	// The frozen aggregate blocks posting until reconciled.
	_, err = f.posting.CreatePost(testUser, project.ID, "blocked", nil, "", day(2))
	require.Error(t, err)

	rebuilt, err := f.streaks.Reconcile(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rebuilt.CurrentStreak)
	assert.Equal(t, 2, rebuilt.TotalPosts)
	assert.False(t, rebuilt.Frozen)

	r := f.post(t, project.ID, day(2))
	assert.Equal(t, 3, r.Stats.CurrentStreak)
}

func TestReconcileIgnoresPostsBeforeRestart(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 7)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(1))

	_, err := f.streaks.Reset(testUser, project.ID, day(4))
	require.NoError(t, err)
	f.post(t, project.ID, day(4).Add(time.Hour))

	rebuilt, err := f.streaks.Reconcile(testUser, project.ID)
	require.NoError(t, err)
	// Pre-reset posts stay in the total but not in the streak.
	assert.Equal(t, 3, rebuilt.TotalPosts)
	assert.Equal(t, 1, rebuilt.CurrentStreak)
	assert.Equal(t, 2, rebuilt.LongestStreak)
}

func TestProgressView(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 4)
	f.post(t, project.ID, day(0))

	progress, err := f.streaks.Progress(testUser, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentStreak)
	assert.Equal(t, 25, progress.ProgressPercentage)
	assert.Equal(t, 3, progress.RemainingDays)
	assert.False(t, progress.IsCompleted)
}

func TestStatsView(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 10)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(0).Add(time.Hour))
	f.post(t, project.ID, day(1))

	view, err := f.streaks.Stats(testUser, project.ID, day(1).Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, view.CurrentStreak)
	assert.Equal(t, 3, view.TotalPosts)
	assert.Equal(t, 2, view.DaysSinceStart)
	assert.Equal(t, 20, view.StreakEfficiency)
	assert.InDelta(t, 1.5, view.AveragePostsPerDay, 0.001)
}
