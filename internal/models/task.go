package models

import (
	"time"
)

type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Priority    int        `json:"priority" db:"priority"`
	IsCollapsed bool       `json:"is_collapsed" db:"is_collapsed"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	UserID      int64      `json:"user_id" db:"user_id"`
	ProjectID   *int64     `json:"project_id,omitempty" db:"project_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
