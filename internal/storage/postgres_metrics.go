package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/driftwoodlabs/showfloor/internal/models"
)

type pgMetricRepo struct {
	db *sqlx.DB
}

func (r *pgMetricRepo) List(ctx context.Context) ([]*models.Metric, error) {
	query := `
		SELECT name, value, updated_at
		FROM site_metrics
		ORDER BY name
	`
	var metrics []*models.Metric
	if err := r.db.SelectContext(ctx, &metrics, query); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

func (r *pgMetricRepo) Upsert(ctx context.Context, name string, value int64) error {
	query := `
		INSERT INTO site_metrics (name, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("upsert metric %s: %w", name, err)
	}
	return nil
}

// Increment touches only rows that exist. Counters are created by the
// seed or by Upsert, never implicitly here.
func (r *pgMetricRepo) Increment(ctx context.Context, name string, delta int64) error {
	query := `
		UPDATE site_metrics
		SET value = value + $2, updated_at = CURRENT_TIMESTAMP
		WHERE name = $1
	`
	if _, err := r.db.ExecContext(ctx, query, name, delta); err != nil {
		return fmt.Errorf("increment metric %s: %w", name, err)
	}
	return nil
}
