package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/model"
)

var (
	ErrBadgeNotFound = errors.New("badge not found")
)

type BadgeRepository interface {
	Create(badge *model.Badge) error
	ByID(badgeID string) (*model.Badge, error)
	Badges() ([]*model.Badge, error)
	Count() (int, error)
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Create(badge *model.Badge) error {
	query := `INSERT INTO badges (id, name, description, icon, criteria, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		badge.ID,
		badge.Name,
		badge.Description,
		badge.Icon,
		badge.Criteria,
		badge.CreatedAt,
	)

	return err
}

func (r *badgeRepository) ByID(badgeID string) (*model.Badge, error) {
	badge := &model.Badge{}
	query := `SELECT * FROM badges WHERE id = $1`

	err := r.db.Get(badge, query, badgeID)
	if err == sql.ErrNoRows {
		return nil, ErrBadgeNotFound
	}

	return badge, err
}

// Badges returns the full badge table ordered ascending by criteria.
func (r *badgeRepository) Badges() ([]*model.Badge, error) {
	var badges []*model.Badge
	query := `SELECT * FROM badges ORDER BY criteria ASC`

	err := r.db.Select(&badges, query)
	if err != nil {
		return nil, err
	}

	return badges, nil
}

func (r *badgeRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM badges`)
	return count, err
}
