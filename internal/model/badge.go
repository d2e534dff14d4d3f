package model

import (
	"time"
)

// Badge is one row of the static achievement table, ordered ascending by
// Criteria (the streak-day threshold that earns it).
type Badge struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	Criteria    int       `db:"criteria" json:"criteria"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// UserBadge records a badge award. Badges are earned once per
// (user, badge, project); the same badge can be earned again on a
// different project. Rows are never mutated or deleted.
type UserBadge struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	BadgeID   string    `db:"badge_id" json:"badgeId"`
	ProjectID string    `db:"project_id" json:"projectId"`
	EarnedAt  time.Time `db:"earned_at" json:"earnedAt"`
}
