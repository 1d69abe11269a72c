package models

import (
	"time"
)

// Status represents a project's lifecycle stage.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus converts a string to Status. Unknown values map to planning.
func ParseStatus(s string) Status {
	switch s {
	case "in-progress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	default:
		return StatusPlanning
	}
}

// IsActive returns true while work on the project is ongoing.
func (s Status) IsActive() bool {
	return s == StatusInProgress
}

// Project represents a studio project shown on the dashboard. OwnerName
// is filled by queries that join the owning user; it is not a column of
// the projects table.
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Status      Status    `json:"status" db:"status"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	OwnerName   string    `json:"owner_name,omitempty" db:"owner_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewProject creates a new Project in the planning stage.
func NewProject(title, description string, userID *int64) *Project {
	return &Project{
		Title:       title,
		Description: description,
		Status:      StatusPlanning,
		UserID:      userID,
	}
}
