package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/model"
)

var (
	ErrBadgeAlreadyAwarded = errors.New("badge already awarded for this project")
)

type UserBadgeRepository interface {
	// Create awards a badge. The unique index on (user_id, badge_id,
	// project_id) makes re-awarding fail with ErrBadgeAlreadyAwarded.
	Create(userBadge *model.UserBadge) error
	ByUser(userID string) ([]*model.UserBadge, error)
	ByProject(userID, projectID string) ([]*model.UserBadge, error)
}

type userBadgeRepository struct {
	db *sqlx.DB
}

func NewUserBadgeRepository(db *sqlx.DB) UserBadgeRepository {
	return &userBadgeRepository{db: db}
}

func (r *userBadgeRepository) Create(userBadge *model.UserBadge) error {
	query := `INSERT INTO user_badges (id, user_id, badge_id, project_id, earned_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		userBadge.ID,
		userBadge.UserID,
		userBadge.BadgeID,
		userBadge.ProjectID,
		userBadge.EarnedAt,
	)
	if err != nil {
		// Map unique-constraint violations without depending on driver
		// error types: if the triple now exists, the award already happened.
		var count int
		checkErr := r.db.Get(&count, `SELECT COUNT(*) FROM user_badges WHERE user_id = $1 AND badge_id = $2 AND project_id = $3`,
			userBadge.UserID, userBadge.BadgeID, userBadge.ProjectID)
		if checkErr == nil && count > 0 {
			return ErrBadgeAlreadyAwarded
		}
		return err
	}

	return nil
}

func (r *userBadgeRepository) ByUser(userID string) ([]*model.UserBadge, error) {
	var userBadges []*model.UserBadge
	query := `SELECT * FROM user_badges WHERE user_id = $1 ORDER BY earned_at DESC`

	err := r.db.Select(&userBadges, query, userID)
	if err != nil {
		return nil, err
	}

	return userBadges, nil
}

func (r *userBadgeRepository) ByProject(userID, projectID string) ([]*model.UserBadge, error) {
	var userBadges []*model.UserBadge
	query := `SELECT * FROM user_badges WHERE user_id = $1 AND project_id = $2 ORDER BY earned_at DESC`

	err := r.db.Select(&userBadges, query, userID, projectID)
	if err != nil {
		return nil, err
	}

	return userBadges, nil
}
