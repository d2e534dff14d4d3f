// Package clock owns the calendar-day arithmetic for streak tracking.
// All day boundaries are UTC midnight; every component that reasons about
// "today" goes through this package so the posting rules, the aggregate
// counters and the calendar view can never disagree about what day it is.
package clock

import "time"

// Day is the length of one calendar day.
const Day = 24 * time.Hour

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the 1-based day offset of t from the start date.
// The start date's own day is day 1. Returns 0 or negative values for
// timestamps before the start day.
func DayNumber(start, t time.Time) int {
	diff := StartOfDay(t).Sub(StartOfDay(start))
	return int(diff/Day) + 1
}

// DaysBetween returns the number of whole calendar days between a and b
// (b - a). Same calendar day yields 0.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / Day)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// Window is a half-open range [Start, End) covering exactly one calendar day.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the window covering the calendar day of t.
func DayWindow(t time.Time) Window {
	start := StartOfDay(t)
	return Window{Start: start, End: start.Add(Day)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// EndDate returns the last day of an n-day challenge starting at start.
// A 1-day challenge ends on its start day.
func EndDate(start time.Time, targetDays int) time.Time {
	return StartOfDay(start).Add(time.Duration(targetDays-1) * Day)
}
