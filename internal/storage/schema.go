package storage

import (
	"github.com/driftwoodlabs/showfloor/internal/models"
)

// schemaStatements creates the application tables. Every statement is
// idempotent so the bootstrap can run on each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'member',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'planning'
			CHECK (status IN ('planning', 'in-progress', 'completed')),
		user_id INTEGER REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id)`,
	`CREATE TABLE IF NOT EXISTS site_metrics (
		name TEXT PRIMARY KEY,
		value BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

type seedUser struct {
	Name  string
	Email string
	Role  string
}

type seedProject struct {
	Title       string
	Description string
	Status      models.Status
	Owner       int // index into seedUsers
}

type seedMetric struct {
	Name  string
	Value int64
}

// Demo content loaded into an empty database on first run.
var (
	seedUsers = []seedUser{
		{Name: "Alice Johnson", Email: "alice@example.com", Role: "admin"},
		{Name: "Bob Smith", Email: "bob@example.com", Role: "developer"},
		{Name: "Carol Davis", Email: "carol@example.com", Role: "designer"},
		{Name: "David Lee", Email: "david@example.com", Role: "manager"},
	}

	seedProjects = []seedProject{
		{Title: "Website Redesign", Description: "Rebuild of the public marketing site", Status: models.StatusCompleted, Owner: 0},
		{Title: "Mobile App", Description: "Companion app for iOS and Android", Status: models.StatusInProgress, Owner: 1},
		{Title: "API Platform", Description: "Public REST API for partner integrations", Status: models.StatusInProgress, Owner: 2},
		{Title: "Analytics Dashboard", Description: "Internal usage reporting", Status: models.StatusPlanning, Owner: 3},
		{Title: "Marketing Campaign", Description: "Spring launch materials", Status: models.StatusPlanning, Owner: 0},
	}

	// The counter values match the rows seeded above. After the seed the
	// counters live their own life; only total_projects moves today.
	seedMetrics = []seedMetric{
		{Name: models.MetricTotalUsers, Value: 4},
		{Name: models.MetricTotalProjects, Value: 5},
		{Name: models.MetricCompletedProjects, Value: 1},
		{Name: models.MetricActiveProjects, Value: 2},
	}
)
