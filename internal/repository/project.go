package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/model"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

type ProjectRepository interface {
	Create(project *model.Project) error
	ByID(userID, projectID string) (*model.Project, error)
	Projects(userID string) ([]*model.Project, error)
	Update(project *model.Project) error
	SoftDelete(userID, projectID string) error
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	query := `INSERT INTO projects (id, user_id, name, description, category_id, target_days, started_at, end_date, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.CategoryID,
		project.TargetDays,
		project.StartedAt,
		project.EndDate,
		project.IsActive,
		project.CreatedAt,
		project.UpdatedAt,
	)

	return err
}

// ByID returns the project only if it is owned by the caller and not
// soft-deleted. Everything downstream of a deleted project reads as
// not found.
func (r *projectRepository) ByID(userID, projectID string) (*model.Project, error) {
	project := &model.Project{}
	query := `SELECT * FROM projects WHERE id = $1 AND user_id = $2 AND is_active = TRUE`

	err := r.db.Get(project, query, projectID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}

	return project, err
}

func (r *projectRepository) Projects(userID string) ([]*model.Project, error) {
	var projects []*model.Project
	query := `SELECT * FROM projects WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at DESC`

	err := r.db.Select(&projects, query, userID)
	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	query := `UPDATE projects
	          SET name = $1, description = $2, category_id = $3, target_days = $4, started_at = $5, end_date = $6, updated_at = $7
	          WHERE id = $8 AND user_id = $9 AND is_active = TRUE`

	result, err := r.db.Exec(query,
		project.Name,
		project.Description,
		project.CategoryID,
		project.TargetDays,
		project.StartedAt,
		project.EndDate,
		time.Now().UTC(),
		project.ID,
		project.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (r *projectRepository) SoftDelete(userID, projectID string) error {
	query := `UPDATE projects SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND user_id = $3 AND is_active = TRUE`

	result, err := r.db.Exec(query, time.Now().UTC(), projectID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProjectNotFound
	}

	return nil
}
