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

// ProjectService owns the project lifecycle: creation in the pending state,
// the one-way start transition, target-length extension and soft deletion.
type ProjectService struct {
	repo      repository.ProjectRepository
	statsRepo repository.StreakStatsRepository
}

func NewProjectService(repo repository.ProjectRepository, statsRepo repository.StreakStatsRepository) *ProjectService {
	return &ProjectService{
		repo:      repo,
		statsRepo: statsRepo,
	}
}

// Create makes a new project in the pending state with a zero-valued
// aggregate row. The challenge clock does not run until Start.
func (s *ProjectService) Create(userID, name, description, categoryID string, targetDays int) (*model.Project, error) {
	err := validation.ValidateProjectName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if categoryID == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if targetDays < 1 {
		return nil, fmt.Errorf("%w: streak days must be at least 1", ErrValidation)
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		TargetDays:  targetDays,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	err = s.statsRepo.Create(NewStats(userID, project.ID, now))
	if err != nil {
		// Rollback: remove the project if the stats row cannot be created
		delErr := s.repo.SoftDelete(userID, project.ID)
		if delErr != nil {
			slog.Error("failed to remove project during rollback", "error", delErr, "project_id", project.ID)
		}
		return nil, fmt.Errorf("failed to create streak stats: %w", err)
	}

	return project, nil
}

// Start fixes startedAt and the derived end date. It happens at most once;
// starting an already-started project fails with ErrAlreadyStarted.
func (s *ProjectService) Start(userID, projectID string, now time.Time) (*model.Project, error) {
	project, err := s.repo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	if project.Started() {
		return nil, ErrAlreadyStarted
	}

	started := now.UTC()
	endDate := clock.EndDate(started, project.TargetDays)
	project.StartedAt = &started
	project.EndDate = &endDate

	err = s.repo.Update(project)
	if err != nil {
		return nil, fmt.Errorf("failed to start project: %w", err)
	}

	slog.Info("project started", "user_id", userID, "project_id", projectID, "target_days", project.TargetDays)
	return project, nil
}

// Extend lengthens the challenge and pushes the end date out. Badges already
// earned against the old target stay earned.
func (s *ProjectService) Extend(userID, projectID string, additionalDays int) (*model.Project, error) {
	if additionalDays < 1 {
		return nil, fmt.Errorf("%w: additional days must be at least 1", ErrValidation)
	}

	project, err := s.repo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	project.TargetDays += additionalDays
	if project.Started() {
		endDate := clock.EndDate(*project.StartedAt, project.TargetDays)
		project.EndDate = &endDate
	}

	err = s.repo.Update(project)
	if err != nil {
		return nil, fmt.Errorf("failed to extend project: %w", err)
	}

	slog.Info("project extended", "user_id", userID, "project_id", projectID, "target_days", project.TargetDays)
	return project, nil
}

// Update edits name, description and category.
func (s *ProjectService) Update(userID, projectID, name, description, categoryID string) (*model.Project, error) {
	err := validation.ValidateProjectName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	project, err := s.repo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	if categoryID != "" {
		project.CategoryID = categoryID
	}

	err = s.repo.Update(project)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Delete soft-deletes the project. Posts and badges are retained but every
// derived view reads as not found afterward.
func (s *ProjectService) Delete(userID, projectID string) error {
	return s.repo.SoftDelete(userID, projectID)
}

func (s *ProjectService) ByID(userID, projectID string) (*model.Project, error) {
	return s.repo.ByID(userID, projectID)
}

// ProjectView pairs a project with its aggregate and derived state.
type ProjectView struct {
	Project *model.Project     `json:"project"`
	Stats   *model.StreakStats `json:"stats"`
	State   model.ProjectState `json:"state"`
}

func (s *ProjectService) View(userID, projectID string) (*ProjectView, error) {
	project, err := s.repo.ByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ByProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectView{
		Project: project,
		Stats:   stats,
		State:   project.State(stats),
	}, nil
}

func (s *ProjectService) Projects(userID string) ([]*ProjectView, error) {
	projects, err := s.repo.Projects(userID)
	if err != nil {
		return nil, err
	}

	views := make([]*ProjectView, 0, len(projects))
	for _, project := range projects {
		stats, err := s.statsRepo.ByProject(userID, project.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &ProjectView{
			Project: project,
			Stats:   stats,
			State:   project.State(stats),
		})
	}

	return views, nil
}
