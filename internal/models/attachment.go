package models

import (
	"time"
)

// TaskAttachment is the database record for a file stored in object storage.
// The bytes live under ObjectKey in the attachments bucket.
type TaskAttachment struct {
	ID          int64     `json:"id" db:"id"`
	TaskID      int64     `json:"task_id" db:"task_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	ObjectKey   string    `json:"-" db:"object_key"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
