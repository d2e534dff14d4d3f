package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

// BadgeService evaluates streak milestones against the badge table and
// records awards.
type BadgeService struct {
	repo      repository.BadgeRepository
	userRepo  repository.UserBadgeRepository
	statsRepo repository.StreakStatsRepository
	notifier  *Notifier
}

func NewBadgeService(repo repository.BadgeRepository, userRepo repository.UserBadgeRepository, statsRepo repository.StreakStatsRepository, notifier *Notifier) *BadgeService {
	return &BadgeService{
		repo:      repo,
		userRepo:  userRepo,
		statsRepo: statsRepo,
		notifier:  notifier,
	}
}

// Evaluate returns the badges whose criteria the current streak meets and
// that the user has not yet earned for this project. It does not award.
func (s *BadgeService) Evaluate(userID, projectID string, currentStreak int) ([]*model.Badge, error) {
	badges, err := s.repo.Badges()
	if err != nil {
		return nil, err
	}

	earned, err := s.userRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	earnedIDs := make(map[string]bool, len(earned))
	for _, ub := range earned {
		earnedIDs[ub.BadgeID] = true
	}

	var eligible []*model.Badge
	for _, badge := range badges {
		if badge.Criteria <= currentStreak && !earnedIDs[badge.ID] {
			eligible = append(eligible, badge)
		}
	}

	return eligible, nil
}

// Award records a badge for the user on the given project. It does not
// re-check criteria; callers decide eligibility. Awarding the same badge
// twice for one project fails with ErrBadgeAlreadyAwarded.
func (s *BadgeService) Award(userID, projectID, badgeID string) (*model.UserBadge, error) {
	badge, err := s.repo.ByID(badgeID)
	if err != nil {
		return nil, err
	}

	ub := &model.UserBadge{
		ID:        uuid.New().String(),
		UserID:    userID,
		BadgeID:   badge.ID,
		ProjectID: projectID,
		EarnedAt:  time.Now().UTC(),
	}

	err = s.userRepo.Create(ub)
	if err != nil {
		return nil, err
	}

	slog.Info("badge awarded", "user_id", userID, "project_id", projectID, "badge", badge.Name)
	return ub, nil
}

// EligibleForProject evaluates against the project's current streak.
func (s *BadgeService) EligibleForProject(userID, projectID string) ([]*model.Badge, error) {
	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(userID, projectID, stats.CurrentStreak)
}

// AwardEligible evaluates and awards everything newly earned, returning the
// awarded badges. Races on the same badge are tolerated: a concurrent award
// is skipped rather than failing the batch.
func (s *BadgeService) AwardEligible(userID, projectID string, currentStreak int) ([]*model.Badge, error) {
	eligible, err := s.Evaluate(userID, projectID, currentStreak)
	if err != nil {
		return nil, err
	}

	var awarded []*model.Badge
	for _, badge := range eligible {
		_, err := s.Award(userID, projectID, badge.ID)
		if errors.Is(err, repository.ErrBadgeAlreadyAwarded) {
			continue
		}
		if err != nil {
			return awarded, fmt.Errorf("failed to award badge %s: %w", badge.ID, err)
		}
		awarded = append(awarded, badge)
	}

	return awarded, nil
}

func (s *BadgeService) Badges() ([]*model.Badge, error) {
	return s.repo.Badges()
}

// EarnedBadge joins an award with its badge definition.
type EarnedBadge struct {
	Badge    *model.Badge `json:"badge"`
	EarnedAt time.Time    `json:"earnedAt"`
}

func (s *BadgeService) Earned(userID string) ([]*EarnedBadge, error) {
	awards, err := s.userRepo.ByUser(userID)
	if err != nil {
		return nil, err
	}

	earned := make([]*EarnedBadge, 0, len(awards))
	for _, ub := range awards {
		badge, err := s.repo.ByID(ub.BadgeID)
		if err != nil {
			return nil, err
		}
		earned = append(earned, &EarnedBadge{Badge: badge, EarnedAt: ub.EarnedAt})
	}

	return earned, nil
}

// NotifyEarned fires badge emails without blocking the caller.
func (s *BadgeService) NotifyEarned(email string, badges []*model.Badge) {
	if email == "" || s.notifier == nil {
		return
	}
	go func() {
		for _, badge := range badges {
			err := s.notifier.BadgeEarned(email, badge)
			if err != nil {
				slog.Error("failed to send badge email", "error", err, "badge", badge.Name)
			}
		}
	}()
}
