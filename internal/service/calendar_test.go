package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streakpost/streakpost/internal/clock"
)

func TestCalendarForStartedProject(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 5)
	f.post(t, project.ID, day(0))
	f.post(t, project.ID, day(2))
	f.post(t, project.ID, day(2).Add(3*time.Hour))

	cal, err := f.calendar.ForProject(testUser, project.ID, day(2).Add(5*time.Hour))
	require.NoError(t, err)

	require.Len(t, cal.Days, 5)
	assert.Equal(t, 5, cal.TotalDays)
	assert.Equal(t, 2, cal.PostedDays)
	assert.Equal(t, 40, cal.Progress)

	d1, d2, d3, d4, d5 := cal.Days[0], cal.Days[1], cal.Days[2], cal.Days[3], cal.Days[4]

	assert.Equal(t, 1, d1.DayNumber)
	assert.Equal(t, clock.StartOfDay(day(0)), d1.TargetDate)
	assert.True(t, d1.IsPosted)
	assert.True(t, d1.IsPast)

	assert.False(t, d2.IsPosted)
	assert.True(t, d2.IsPast)

	assert.True(t, d3.IsPosted)
	assert.True(t, d3.IsToday)
	assert.False(t, d3.IsPast)

	assert.True(t, d4.IsFuture)
	assert.True(t, d5.IsFuture)
}

func TestCalendarBeforeStart(t *testing.T) {
	f := newFixture(t)
	project, err := f.projects.Create(testUser, "Writing", "", "craft", 3)
	require.NoError(t, err)

	cal, err := f.calendar.ForProject(testUser, project.ID, day(0))
	require.NoError(t, err)

	require.Len(t, cal.Days, 3)
	assert.Equal(t, 0, cal.PostedDays)
	for _, d := range cal.Days {
		assert.True(t, d.IsFuture)
		assert.False(t, d.IsPosted)
		assert.True(t, d.TargetDate.IsZero())
	}
}

func TestCalendarIgnoresPostsBeforeRestart(t *testing.T) {
	f := newFixture(t)
	project := f.startedProject(t, day(0), 5)
	f.post(t, project.ID, day(0))

	_, err := f.streaks.Reset(testUser, project.ID, day(2))
	require.NoError(t, err)
	f.post(t, project.ID, day(2).Add(time.Hour))

	cal, err := f.calendar.ForProject(testUser, project.ID, day(2).Add(2*time.Hour))
	require.NoError(t, err)

	// The calendar re-anchors at the restart; only post-reset posts show.
	assert.Equal(t, clock.StartOfDay(day(2)), cal.Days[0].TargetDate)
	assert.True(t, cal.Days[0].IsPosted)
	assert.Equal(t, 1, cal.PostedDays)
}
