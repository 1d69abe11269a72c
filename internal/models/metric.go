package models

import (
	"time"
)

// Names of the site counters. The values are plain counters owned by
// whatever code path updates them; nothing recomputes them from the
// underlying tables.
const (
	MetricTotalUsers        = "total_users"
	MetricTotalProjects     = "total_projects"
	MetricCompletedProjects = "completed_projects"
	MetricActiveProjects    = "active_projects"
)

// Metric is a named site counter.
type Metric struct {
	Name      string    `json:"name" db:"name"`
	Value     int64     `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
