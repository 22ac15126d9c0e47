package models

import "time"

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	CreatedAt   time.Time
}
