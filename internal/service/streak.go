package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

// StreakService owns the streak aggregate: the single authoritative update
// path for StreakStats, streak-break detection, reset, and the consistency
// checks that keep the cached counters honest against the progress log.
type StreakService struct {
	projectRepo repository.ProjectRepository
	postRepo    repository.ProgressPostRepository
	statsRepo   repository.StreakStatsRepository
}

func NewStreakService(
	projectRepo repository.ProjectRepository,
	postRepo repository.ProgressPostRepository,
	statsRepo repository.StreakStatsRepository,
) *StreakService {
	return &StreakService{
		projectRepo: projectRepo,
		postRepo:    postRepo,
		statsRepo:   statsRepo,
	}
}

// advanceStats applies one accepted post to the aggregate. Every post counts
// toward totalPosts; the streak only grows on the first post of a new
// calendar day. Returns whether this post crossed the challenge target.
//
// This is the only place streak counters move forward. The posting path runs
// it inside the same transaction that appends the post.
func advanceStats(stats *model.StreakStats, targetDays int, now time.Time) (completedNow bool) {
	day := clock.StartOfDay(now)

	stats.TotalPosts++

	firstOfDay := stats.LastPostedDate == nil || day.After(*stats.LastPostedDate)
	if firstOfDay {
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		// The crossing happens exactly once per challenge: the streak grows
		// one day at a time, so equality is the crossing condition.
		if stats.CurrentStreak == targetDays {
			stats.ChallengesCompleted++
			completedNow = true
		}
	}

	stats.LastPostedDate = &day
	return completedNow
}

// NewStats returns a zero-valued aggregate row for a fresh project.
func NewStats(userID, projectID string, now time.Time) *model.StreakStats {
	return &model.StreakStats{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StreakStatus is the advisory streak-break report. Breakage is surfaced,
// never silently applied: currentStreak keeps its value until the owner
// explicitly resets.
type StreakStatus struct {
	IsStreakBroken  bool       `json:"isStreakBroken"`
	MissedDays      int        `json:"missedDays"`
	LastPostedDate  *time.Time `json:"lastPostedDate"`
	HasPostedToday  bool       `json:"hasPostedToday"`
	CanPostToday    bool       `json:"canPostToday"`
	CurrentStreak   int        `json:"currentStreak"`
	NextExpectedDay int        `json:"nextExpectedDay"`
}

// CheckStatus reports whether the streak is broken as of now.
func (s *StreakService) CheckStatus(userID, projectID string, now time.Time) (*StreakStatus, error) {
	if _, err := s.projectRepo.ByID(userID, projectID); err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	postsToday, err := s.postRepo.CountInRange(userID, projectID, clock.DayWindow(now))
	if err != nil {
		return nil, err
	}

	status := &StreakStatus{
		LastPostedDate:  stats.LastPostedDate,
		HasPostedToday:  postsToday > 0,
		CurrentStreak:   stats.CurrentStreak,
		NextExpectedDay: stats.CurrentStreak + 1,
	}

	if stats.LastPostedDate != nil {
		gap := clock.DaysBetween(*stats.LastPostedDate, now)
		if gap > 1 {
			status.IsStreakBroken = true
			status.MissedDays = gap - 1
		}
	}

	status.CanPostToday = !status.HasPostedToday && !status.IsStreakBroken
	return status, nil
}

// Reset restarts the challenge: the current streak and last-posted marker go
// back to zero and the project clock restarts today. Longest streak, total
// posts and completed-challenge count are history and survive the reset.
func (s *StreakService) Reset(userID, projectID string, now time.Time) (*model.Project, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats.CurrentStreak = 0
	stats.LastPostedDate = nil
	stats.Frozen = false
	err = s.statsRepo.Update(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to reset stats: %w", err)
	}

	if project.Started() {
		started := now.UTC()
		endDate := clock.EndDate(started, project.TargetDays)
		project.StartedAt = &started
		project.EndDate = &endDate
		err = s.projectRepo.Update(project)
		if err != nil {
			return nil, fmt.Errorf("failed to restart project clock: %w", err)
		}
	}

	slog.Info("streak reset", "user_id", userID, "project_id", projectID)
	return project, nil
}

// StreakProgress is the headline progress view for a project.
type StreakProgress struct {
	CurrentStreak       int  `json:"currentStreak"`
	LongestStreak       int  `json:"longestStreak"`
	TotalPosts          int  `json:"totalPosts"`
	ChallengesCompleted int  `json:"challengesCompleted"`
	ProgressPercentage  int  `json:"progressPercentage"`
	RemainingDays       int  `json:"remainingDays"`
	IsCompleted         bool `json:"isCompleted"`
}

func (s *StreakService) Progress(userID, projectID string) (*StreakProgress, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	remaining := project.TargetDays - stats.CurrentStreak
	if remaining < 0 {
		remaining = 0
	}

	return &StreakProgress{
		CurrentStreak:       stats.CurrentStreak,
		LongestStreak:       stats.LongestStreak,
		TotalPosts:          stats.TotalPosts,
		ChallengesCompleted: stats.ChallengesCompleted,
		ProgressPercentage:  percent(stats.CurrentStreak, project.TargetDays),
		RemainingDays:       remaining,
		IsCompleted:         stats.CurrentStreak >= project.TargetDays,
	}, nil
}

// StreakStatsView extends the raw counters with derived statistics.
type StreakStatsView struct {
	CurrentStreak       int     `json:"currentStreak"`
	LongestStreak       int     `json:"longestStreak"`
	TotalPosts          int     `json:"totalPosts"`
	ChallengesCompleted int     `json:"challengesCompleted"`
	AveragePostsPerDay  float64 `json:"averagePostsPerDay"`
	StreakEfficiency    int     `json:"streakEfficiency"`
	DaysSinceStart      int     `json:"daysSinceStart"`
	TargetDays          int     `json:"targetDays"`
}

func (s *StreakService) Stats(userID, projectID string, now time.Time) (*StreakStatsView, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	view := &StreakStatsView{
		CurrentStreak:       stats.CurrentStreak,
		LongestStreak:       stats.LongestStreak,
		TotalPosts:          stats.TotalPosts,
		ChallengesCompleted: stats.ChallengesCompleted,
		StreakEfficiency:    percent(stats.CurrentStreak, project.TargetDays),
		TargetDays:          project.TargetDays,
	}

	if project.Started() {
		view.DaysSinceStart = clock.DayNumber(*project.StartedAt, now)
		if view.DaysSinceStart > 0 {
			avg := float64(stats.TotalPosts) / float64(view.DaysSinceStart)
			view.AveragePostsPerDay = float64(int(avg*100)) / 100
		}
	}

	return view, nil
}

// Verify recomputes the aggregate from the progress log and compares. On a
// mismatch it freezes the stats row, which blocks further posting until
// Reconcile runs, and returns ErrConsistency.
func (s *StreakService) Verify(userID, projectID string) error {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return err
	}

	totalPosts, distinctDays, _, err := s.recompute(project)
	if err != nil {
		return err
	}

	if totalPosts == stats.TotalPosts && distinctDays == stats.CurrentStreak {
		return nil
	}

	slog.Error("streak stats diverged from progress log",
		"user_id", userID,
		"project_id", projectID,
		"stats_total_posts", stats.TotalPosts,
		"log_total_posts", totalPosts,
		"stats_current_streak", stats.CurrentStreak,
		"log_distinct_days", distinctDays,
	)

	err = s.statsRepo.SetFrozen(userID, projectID, true)
	if err != nil {
		return fmt.Errorf("failed to freeze stats: %w", err)
	}

	return fmt.Errorf("%w: log has %d posts over %d days, aggregate says %d posts, streak %d",
		ErrConsistency, totalPosts, distinctDays, stats.TotalPosts, stats.CurrentStreak)
}

// Reconcile rebuilds the aggregate from the progress log and unfreezes it.
// The event log is ground truth; the counters are just a cache.
func (s *StreakService) Reconcile(userID, projectID string) (*model.StreakStats, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	totalPosts, distinctDays, lastDay, err := s.recompute(project)
	if err != nil {
		return nil, err
	}

	stats.TotalPosts = totalPosts
	stats.CurrentStreak = distinctDays
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastPostedDate = lastDay
	stats.Frozen = false

	err = s.statsRepo.Update(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to store reconciled stats: %w", err)
	}

	slog.Info("streak stats reconciled",
		"user_id", userID,
		"project_id", projectID,
		"total_posts", totalPosts,
		"current_streak", distinctDays,
	)
	return stats, nil
}

// recompute derives (total posts, distinct posted days since the challenge
// clock started, last posted day) purely from the log. Posts made before the
// current startedAt instant belong to a previous run of the challenge and do
// not count toward the streak, though they stay in the total.
func (s *StreakService) recompute(project *model.Project) (totalPosts, distinctDays int, lastDay *time.Time, err error) {
	times, err := s.postRepo.PostTimes(project.UserID, project.ID)
	if err != nil {
		return 0, 0, nil, err
	}

	totalPosts = len(times)

	if !project.Started() {
		return totalPosts, 0, nil, nil
	}

	var prev time.Time
	for _, t := range times {
		if t.Before(*project.StartedAt) {
			continue
		}
		day := clock.StartOfDay(t)
		if lastDay == nil || day.After(prev) {
			distinctDays++
			prev = day
			d := day
			lastDay = &d
		}
	}

	return totalPosts, distinctDays, lastDay, nil
}

func percent(value, target int) int {
	if target <= 0 {
		return 0
	}
	p := value * 100 / target
	if p > 100 {
		p = 100
	}
	return p
}
