package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/driftwoodlabs/showfloor/internal/models"
)

type pgProjectRepo struct {
	db *sqlx.DB
}

// List joins the owning user so the dashboard can show names without a
// second query. The join is LEFT so ownerless projects still appear.
func (r *pgProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT p.id, p.title, COALESCE(p.description, '') AS description,
		       p.status, p.user_id, COALESCE(u.name, '') AS owner_name,
		       p.created_at
		FROM projects p
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
	`
	var projects []*models.Project
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *pgProjectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (title, description, status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		project.Title, project.Description, project.Status, project.UserID,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *pgProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
