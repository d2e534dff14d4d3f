package model

import (
	"time"
)

// ProjectState is the derived lifecycle state of a project. It is never
// persisted; readers compute it from the project row and its streak stats.
type ProjectState string

const (
	ProjectStatePending   ProjectState = "pending"
	ProjectStateActive    ProjectState = "active"
	ProjectStateCompleted ProjectState = "completed"
)

type Project struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	CategoryID  string     `db:"category_id" json:"categoryId"` // opaque reference owned by the category collaborator
	TargetDays  int        `db:"target_days" json:"targetDays"`
	StartedAt   *time.Time `db:"started_at" json:"startedAt"` // nil until the challenge is started
	EndDate     *time.Time `db:"end_date" json:"endDate"`     // startedAt + targetDays - 1, nil while pending
	IsActive    bool       `db:"is_active" json:"-"`          // soft-delete marker
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Started reports whether the challenge clock is running.
func (p *Project) Started() bool {
	return p.StartedAt != nil
}

// State derives the lifecycle state from the project and its stats.
// Completion is a condition, not a stored value: a project is completed
// once the current streak has reached the target length.
func (p *Project) State(stats *StreakStats) ProjectState {
	if !p.Started() {
		return ProjectStatePending
	}
	if stats != nil && stats.CurrentStreak >= p.TargetDays {
		return ProjectStateCompleted
	}
	return ProjectStateActive
}
