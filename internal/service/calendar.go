package service

import (
	"time"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

// CalendarService renders the day-by-day challenge view. It is derived
// entirely from the progress log and the project clock; the cached streak
// counters are never consulted.
type CalendarService struct {
	projectRepo repository.ProjectRepository
	postRepo    repository.ProgressPostRepository
}

func NewCalendarService(projectRepo repository.ProjectRepository, postRepo repository.ProgressPostRepository) *CalendarService {
	return &CalendarService{
		projectRepo: projectRepo,
		postRepo:    postRepo,
	}
}

// CalendarDay is one cell of the challenge calendar.
type CalendarDay struct {
	DayNumber  int       `json:"dayNumber"`
	TargetDate time.Time `json:"targetDate"`
	IsPosted   bool      `json:"isPosted"`
	IsToday    bool      `json:"isToday"`
	IsPast     bool      `json:"isPast"`
	IsFuture   bool      `json:"isFuture"`
}

// Calendar covers the whole challenge, one entry per target day.
type Calendar struct {
	Project    *model.Project `json:"project"`
	Days       []CalendarDay  `json:"days"`
	TotalDays  int            `json:"totalDays"`
	PostedDays int            `json:"postedDays"`
	Progress   int            `json:"progressPercentage"`
}

// ForProject builds the calendar as of now. Before the project starts it
// returns all days as future with no dates fixed yet.
func (s *CalendarService) ForProject(userID, projectID string, now time.Time) (*Calendar, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	cal := &Calendar{
		Project:   project,
		Days:      make([]CalendarDay, 0, project.TargetDays),
		TotalDays: project.TargetDays,
	}

	if !project.Started() {
		for i := 1; i <= project.TargetDays; i++ {
			cal.Days = append(cal.Days, CalendarDay{DayNumber: i, IsFuture: true})
		}
		return cal, nil
	}

	times, err := s.postRepo.PostTimes(userID, projectID)
	if err != nil {
		return nil, err
	}

	posted := make(map[time.Time]bool, len(times))
	for _, t := range times {
		if t.Before(*project.StartedAt) {
			continue
		}
		posted[clock.StartOfDay(t)] = true
	}

	start := clock.StartOfDay(*project.StartedAt)
	today := clock.StartOfDay(now)

	for i := 1; i <= project.TargetDays; i++ {
		date := start.Add(time.Duration(i-1) * clock.Day)
		day := CalendarDay{
			DayNumber:  i,
			TargetDate: date,
			IsPosted:   posted[date],
			IsToday:    date.Equal(today),
			IsPast:     date.Before(today),
			IsFuture:   date.After(today),
		}
		if day.IsPosted {
			cal.PostedDays++
		}
		cal.Days = append(cal.Days, day)
	}

	cal.Progress = percent(cal.PostedDays, cal.TotalDays)
	return cal, nil
}
