package projects

import (
	"errors"
	"strings"
)

// ValidateTitle checks a project title from the intake form.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}
	return nil
}

// ValidateUserID checks the owner reference. Zero means the field was
// absent from the request body.
func ValidateUserID(id int64) error {
	if id <= 0 {
		return errors.New("user_id is required")
	}
	return nil
}
