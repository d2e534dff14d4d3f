package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/clock"
	"github.com/streakpost/streakpost/internal/model"
)

var (
	ErrPostNotFound    = errors.New("progress post not found")
	ErrDailyCapReached = errors.New("daily post cap reached")
	ErrStatsFrozen     = errors.New("streak stats frozen pending reconciliation")
)

type ProgressPostRepository interface {
	// CreateWithStats appends a post and updates the streak aggregate in a
	// single transaction. The apply callback receives the current stats row
	// and mutates it; the repository persists the result before committing.
	// Fails with ErrDailyCapReached when the day already holds cap posts,
	// and ErrStatsFrozen when the aggregate is blocked for reconciliation.
	CreateWithStats(post *model.ProgressPost, day clock.Window, cap int, apply func(stats *model.StreakStats)) (*model.StreakStats, error)

	ByID(userID, postID string) (*model.ProgressPost, error)
	Update(post *model.ProgressPost) error
	Posts(userID, projectID string, limit, offset int) ([]*model.ProgressPost, error)
	PostsInRange(userID, projectID string, w clock.Window) ([]*model.ProgressPost, error)
	Count(userID, projectID string) (int, error)
	CountInRange(userID, projectID string, w clock.Window) (int, error)
	// PostTimes returns the creation timestamps of every post for the
	// project, oldest first. Calendar reconstruction and stats verification
	// derive calendar days from these, never from the aggregate.
	PostTimes(userID, projectID string) ([]time.Time, error)
}

type progressPostRepository struct {
	db *sqlx.DB
}

func NewProgressPostRepository(db *sqlx.DB) ProgressPostRepository {
	return &progressPostRepository{db: db}
}

func (r *progressPostRepository) CreateWithStats(post *model.ProgressPost, day clock.Window, cap int, apply func(stats *model.StreakStats)) (*model.StreakStats, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Touch the stats row first. On Postgres this takes a row lock for the
	// rest of the transaction, so two concurrent posts for the same project
	// serialize before either counts today's posts; SQLite serializes all
	// writers anyway. This closes the check-then-act race on the daily cap.
	result, err := tx.Exec(`UPDATE streak_stats SET updated_at = updated_at WHERE user_id = $1 AND project_id = $2`,
		post.UserID, post.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stats row: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrStatsNotFound
	}

	stats := &model.StreakStats{}
	err = tx.Get(stats, `SELECT * FROM streak_stats WHERE user_id = $1 AND project_id = $2`,
		post.UserID, post.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	if stats.Frozen {
		return nil, ErrStatsFrozen
	}

	var count int
	err = tx.Get(&count, `SELECT COUNT(*) FROM progress_posts WHERE project_id = $1 AND user_id = $2 AND created_at >= $3 AND created_at < $4`,
		post.ProjectID, post.UserID, day.Start, day.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts for day: %w", err)
	}
	if count >= cap {
		return nil, ErrDailyCapReached
	}

	_, err = tx.Exec(`INSERT INTO progress_posts (id, project_id, user_id, content, image_url, image_filename, image_size, image_mime_type, image_width, image_height, image_uploaded_at, created_at, updated_at)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		post.ID,
		post.ProjectID,
		post.UserID,
		post.Content,
		post.ImageURL,
		post.ImageFilename,
		post.ImageSize,
		post.ImageMimeType,
		post.ImageWidth,
		post.ImageHeight,
		post.ImageUploadedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	apply(stats)

	_, err = tx.Exec(`UPDATE streak_stats
	                  SET current_streak = $1, longest_streak = $2, total_posts = $3, challenges_completed = $4, last_posted_date = $5, updated_at = $6
	                  WHERE user_id = $7 AND project_id = $8`,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalPosts,
		stats.ChallengesCompleted,
		stats.LastPostedDate,
		time.Now().UTC(),
		stats.UserID,
		stats.ProjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *progressPostRepository) ByID(userID, postID string) (*model.ProgressPost, error) {
	post := &model.ProgressPost{}
	query := `SELECT * FROM progress_posts WHERE id = $1 AND user_id = $2`

	err := r.db.Get(post, query, postID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *progressPostRepository) Update(post *model.ProgressPost) error {
	query := `UPDATE progress_posts
	          SET content = $1, image_url = $2, image_filename = $3, image_size = $4, image_mime_type = $5, image_width = $6, image_height = $7, image_uploaded_at = $8, updated_at = $9
	          WHERE id = $10 AND user_id = $11`

	result, err := r.db.Exec(query,
		post.Content,
		post.ImageURL,
		post.ImageFilename,
		post.ImageSize,
		post.ImageMimeType,
		post.ImageWidth,
		post.ImageHeight,
		post.ImageUploadedAt,
		time.Now().UTC(),
		post.ID,
		post.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *progressPostRepository) Posts(userID, projectID string, limit, offset int) ([]*model.ProgressPost, error) {
	var posts []*model.ProgressPost
	query := `SELECT * FROM progress_posts WHERE project_id = $1 AND user_id = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	err := r.db.Select(&posts, query, projectID, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *progressPostRepository) PostsInRange(userID, projectID string, w clock.Window) ([]*model.ProgressPost, error) {
	var posts []*model.ProgressPost
	query := `SELECT * FROM progress_posts WHERE project_id = $1 AND user_id = $2 AND created_at >= $3 AND created_at < $4 ORDER BY created_at ASC`

	err := r.db.Select(&posts, query, projectID, userID, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *progressPostRepository) Count(userID, projectID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM progress_posts WHERE project_id = $1 AND user_id = $2`
	err := r.db.Get(&count, query, projectID, userID)
	return count, err
}

func (r *progressPostRepository) CountInRange(userID, projectID string, w clock.Window) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM progress_posts WHERE project_id = $1 AND user_id = $2 AND created_at >= $3 AND created_at < $4`
	err := r.db.Get(&count, query, projectID, userID, w.Start, w.End)
	return count, err
}

func (r *progressPostRepository) PostTimes(userID, projectID string) ([]time.Time, error) {
	var times []time.Time
	query := `SELECT created_at FROM progress_posts WHERE project_id = $1 AND user_id = $2 ORDER BY created_at ASC`

	err := r.db.Select(&times, query, projectID, userID)
	if err != nil {
		return nil, err
	}

	return times, nil
}
