package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight is unchanged",
			in:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just before midnight stays on same day",
			in:   time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just after midnight is the next day",
			in:   time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC zone normalizes to UTC day",
			in:   time.Date(2025, 3, 10, 22, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			want: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfDay(tt.in))
		})
	}
}

func TestDayNumber(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"same instant", start, 1},
		{"later same day", time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), 1},
		{"next day just after midnight", time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC), 2},
		{"a week in", time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), 7},
		{"before the start day", time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayNumber(start, tt.at))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(a, b), "two minutes across midnight is one day apart")
	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, -1, DaysBetween(b, a))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(
		time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC),
		time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
	))
	assert.False(t, SameDay(
		time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	))
}

func TestDayWindow(t *testing.T) {
	w := DayWindow(time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), w.End)

	assert.True(t, w.Contains(w.Start), "window start is inclusive")
	assert.True(t, w.Contains(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(w.End), "window end is exclusive")
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		days int
		want time.Time
	}{
		{1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{3, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{30, time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EndDate(start, tt.days), "targetDays=%d", tt.days)
	}
}
