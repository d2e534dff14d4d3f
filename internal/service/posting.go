package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
	"github.com/streakpost/streakpost/internal/validation"
)

// Rejection reasons reported by CanPost. CreatePost enforces the same rules
// with sentinel errors.
const (
	ReasonNotStarted  = "not_started"
	ReasonFrozen      = "stats_frozen"
	ReasonGoalReached = "goal_reached"
	ReasonDailyCap    = "daily_cap_reached"
)

// PostingService is the write path for progress posts. Every accepted post
// goes through CreatePost, which appends to the log and advances the streak
// aggregate in one transaction.
type PostingService struct {
	projectRepo repository.ProjectRepository
	postRepo    repository.ProgressPostRepository
	statsRepo   repository.StreakStatsRepository
	badges      *BadgeService
	notifier    *Notifier
	uploads     *UploadService // nil when no object store is configured
	dailyCap    int
	maxContent  int
}

func NewPostingService(
	projectRepo repository.ProjectRepository,
	postRepo repository.ProgressPostRepository,
	statsRepo repository.StreakStatsRepository,
	badges *BadgeService,
	notifier *Notifier,
	uploads *UploadService,
	dailyCap, maxContent int,
) *PostingService {
	return &PostingService{
		projectRepo: projectRepo,
		postRepo:    postRepo,
		statsRepo:   statsRepo,
		badges:      badges,
		notifier:    notifier,
		uploads:     uploads,
		dailyCap:    dailyCap,
		maxContent:  maxContent,
	}
}

// PostPermission is the advisory answer to "can I post right now". It can go
// stale the moment it is returned; CreatePost re-checks everything inside
// its transaction.
type PostPermission struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	DayNumber  int    `json:"dayNumber"`
	PostsToday int    `json:"postsToday"`
	DailyCap   int    `json:"dailyCap"`
}

// CanPost evaluates the posting rules for the project as of now.
func (s *PostingService) CanPost(userID, projectID string, now time.Time) (*PostPermission, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	perm := &PostPermission{DailyCap: s.dailyCap}

	if !project.Started() {
		perm.Reason = ReasonNotStarted
		return perm, nil
	}
	perm.DayNumber = clock.DayNumber(*project.StartedAt, now)

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	if stats.Frozen {
		perm.Reason = ReasonFrozen
		return perm, nil
	}

	if stats.CurrentStreak >= project.TargetDays {
		perm.Reason = ReasonGoalReached
		return perm, nil
	}

	postsToday, err := s.postRepo.CountInRange(userID, projectID, clock.DayWindow(now))
	if err != nil {
		return nil, err
	}
	perm.PostsToday = postsToday

	if postsToday >= s.dailyCap {
		perm.Reason = ReasonDailyCap
		return perm, nil
	}

	perm.Allowed = true
	return perm, nil
}

// PostResult is the outcome of an accepted post: the stored post, the stats
// after the aggregate advanced, and any milestones this post triggered.
type PostResult struct {
	Post               *model.ProgressPost `json:"post"`
	Stats              *model.StreakStats  `json:"stats"`
	CompletedChallenge bool                `json:"completedChallenge"`
	AwardedBadges      []*model.Badge      `json:"awardedBadges,omitempty"`
}

// CreatePost validates and appends a progress post. The append, the daily
// cap check and the streak advance commit together or not at all. The email
// is used for milestone notifications and may be empty.
func (s *PostingService) CreatePost(userID, projectID, content string, image *model.ImageMeta, email string, now time.Time) (*PostResult, error) {
	project, err := s.projectRepo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	if !project.Started() {
		return nil, ErrNotStarted
	}

	err = validation.ValidatePostContent(content, s.maxContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	err = validation.ValidateImageMeta(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if stats.CurrentStreak >= project.TargetDays {
		return nil, ErrGoalReached
	}

	ts := now.UTC()
	post := &model.ProgressPost{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	post.SetImage(image, ts)

	var completedNow bool
	stats, err = s.postRepo.CreateWithStats(post, clock.DayWindow(now), s.dailyCap, func(stats *model.StreakStats) {
		completedNow = advanceStats(stats, project.TargetDays, now)
	})
	if err != nil {
		return nil, err
	}

	result := &PostResult{
		Post:               post,
		Stats:              stats,
		CompletedChallenge: completedNow,
	}

	awarded, err := s.badges.AwardEligible(userID, projectID, stats.CurrentStreak)
	if err != nil {
		// The post is already committed; a badge hiccup must not undo it.
		slog.Error("failed to award badges", "error", err, "user_id", userID, "project_id", projectID)
	}
	result.AwardedBadges = awarded
	s.badges.NotifyEarned(email, awarded)

	if completedNow && email != "" {
		go func() {
			err := s.notifier.ChallengeCompleted(email, project)
			if err != nil {
				slog.Error("failed to send completion email", "error", err, "project_id", projectID)
			}
		}()
	}

	slog.Info("progress post created",
		"user_id", userID,
		"project_id", projectID,
		"current_streak", stats.CurrentStreak,
		"completed", completedNow,
	)
	return result, nil
}

// UpdatePostInput carries a post edit. A nil Image keeps the current one;
// RemoveImage detaches it.
type UpdatePostInput struct {
	Content     string
	Image       *model.ImageMeta
	RemoveImage bool
}

// UpdatePost edits content and image metadata. Edits never touch the streak
// aggregate: the post's creation time already counted.
func (s *PostingService) UpdatePost(userID, postID string, in UpdatePostInput) (*model.ProgressPost, error) {
	post, err := s.postRepo.ByID(userID, postID)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePostContent(in.Content, s.maxContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	err = validation.ValidateImageMeta(in.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	old := post.Image()
	post.Content = in.Content
	switch {
	case in.RemoveImage:
		post.ClearImage()
	case in.Image != nil:
		post.SetImage(in.Image, time.Now().UTC())
	}

	err = s.postRepo.Update(post)
	if err != nil {
		return nil, err
	}

	// Clean up the replaced object once the edit is stored.
	if s.uploads != nil && old != nil {
		replaced := in.RemoveImage || (in.Image != nil && in.Image.URL != old.URL)
		if replaced {
			s.uploads.RemoveByURL(old.URL)
		}
	}

	return post, nil
}

// PostPage is one page of the progress history, newest first.
type PostPage struct {
	Posts   []*model.ProgressPost `json:"posts"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

func (s *PostingService) History(userID, projectID string, limit, offset int) (*PostPage, error) {
	if _, err := s.projectRepo.ByID(userID, projectID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.postRepo.Posts(userID, projectID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.Count(userID, projectID)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:   posts,
		Total:   total,
		HasMore: offset+len(posts) < total,
	}, nil
}

// PostsByDate returns the posts made on one calendar day, oldest first.
func (s *PostingService) PostsByDate(userID, projectID string, date time.Time) ([]*model.ProgressPost, error) {
	if _, err := s.projectRepo.ByID(userID, projectID); err != nil {
		return nil, err
	}
	return s.postRepo.PostsInRange(userID, projectID, clock.DayWindow(date))
}
