// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"

	"github.com/driftwoodlabs/showfloor/internal/models"
)

// Store is the main interface for database operations.
type Store interface {
	// Open initializes the database connection pool.
	Open() error
	// Close closes the database connection pool.
	Close() error
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Repository accessors
	Users() UserRepository
	Projects() ProjectRepository
	Metrics() MetricRepository
}

// UserRepository defines operations for the team roster.
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	// GetByID returns nil without error when no user has the id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ProjectRepository defines operations for projects.
type ProjectRepository interface {
	// List returns all projects newest first, with owner names joined in.
	List(ctx context.Context) ([]*models.Project, error)
	// Create inserts a project and fills its ID and CreatedAt.
	Create(ctx context.Context, project *models.Project) error
	Count(ctx context.Context) (int64, error)
}

// MetricRepository defines operations for the site counters.
type MetricRepository interface {
	List(ctx context.Context) ([]*models.Metric, error)
	// Upsert inserts a counter or overwrites its value when the name exists.
	Upsert(ctx context.Context, name string, value int64) error
	// Increment adds delta to an existing counter. Unknown names are a no-op.
	Increment(ctx context.Context, name string, delta int64) error
}
