package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/model"
)

var (
	ErrStatsNotFound = errors.New("streak stats not found")
)

type StreakStatsRepository interface {
	Create(stats *model.StreakStats) error
	ByProject(userID, projectID string) (*model.StreakStats, error)
	Update(stats *model.StreakStats) error
	SetFrozen(userID, projectID string, frozen bool) error
}

type streakStatsRepository struct {
	db *sqlx.DB
}

func NewStreakStatsRepository(db *sqlx.DB) StreakStatsRepository {
	return &streakStatsRepository{db: db}
}

func (r *streakStatsRepository) Create(stats *model.StreakStats) error {
	query := `INSERT INTO streak_stats (id, user_id, project_id, current_streak, longest_streak, total_posts, challenges_completed, last_posted_date, frozen, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		stats.ID,
		stats.UserID,
		stats.ProjectID,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalPosts,
		stats.ChallengesCompleted,
		stats.LastPostedDate,
		stats.Frozen,
		stats.CreatedAt,
		stats.UpdatedAt,
	)

	return err
}

func (r *streakStatsRepository) ByProject(userID, projectID string) (*model.StreakStats, error) {
	stats := &model.StreakStats{}
	query := `SELECT * FROM streak_stats WHERE user_id = $1 AND project_id = $2`

	err := r.db.Get(stats, query, userID, projectID)
	if err == sql.ErrNoRows {
		return nil, ErrStatsNotFound
	}

	return stats, err
}

func (r *streakStatsRepository) Update(stats *model.StreakStats) error {
	query := `UPDATE streak_stats
	          SET current_streak = $1, longest_streak = $2, total_posts = $3, challenges_completed = $4, last_posted_date = $5, frozen = $6, updated_at = $7
	          WHERE user_id = $8 AND project_id = $9`

	result, err := r.db.Exec(query,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalPosts,
		stats.ChallengesCompleted,
		stats.LastPostedDate,
		stats.Frozen,
		time.Now().UTC(),
		stats.UserID,
		stats.ProjectID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStatsNotFound
	}

	return nil
}

func (r *streakStatsRepository) SetFrozen(userID, projectID string, frozen bool) error {
	query := `UPDATE streak_stats SET frozen = $1, updated_at = $2 WHERE user_id = $3 AND project_id = $4`

	result, err := r.db.Exec(query, frozen, time.Now().UTC(), userID, projectID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStatsNotFound
	}

	return nil
}
