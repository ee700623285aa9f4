package domain

import "time"

// Task is a to-do item owned by a single user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
