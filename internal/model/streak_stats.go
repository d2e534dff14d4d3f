package model

import (
	"time"
)

// StreakStats is the incrementally-maintained aggregate for one
// (user, project) pair. The progress-post log is ground truth; this row is
// a cache written only by the posting path and the explicit reset and
// reconcile operations, and it must always be recomputable from the log.
type StreakStats struct {
	ID                  string     `db:"id" json:"id"`
	UserID              string     `db:"user_id" json:"userId"`
	ProjectID           string     `db:"project_id" json:"projectId"`
	CurrentStreak       int        `db:"current_streak" json:"currentStreak"`
	LongestStreak       int        `db:"longest_streak" json:"longestStreak"`
	TotalPosts          int        `db:"total_posts" json:"totalPosts"`
	ChallengesCompleted int        `db:"challenges_completed" json:"challengesCompleted"`
	LastPostedDate      *time.Time `db:"last_posted_date" json:"lastPostedDate"` // start-of-day, nil before the first post
	Frozen              bool       `db:"frozen" json:"frozen"`                   // set when a consistency check fails; blocks posting
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updatedAt"`
}
