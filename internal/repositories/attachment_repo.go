package repositories

import (
	"context"

	"taskboard/internal/models"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.TaskAttachment) error
	GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error)
	ListByTask(ctx context.Context, taskID int64) ([]*models.TaskAttachment, error)
	Delete(ctx context.Context, id int64) error
}

type attachmentRepo struct {
	db Database
}

func NewAttachmentRepository(db Database) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, attachment *models.TaskAttachment) error {
	query := `
		INSERT INTO task_attachments (task_id, user_id, file_name, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		attachment.TaskID, attachment.UserID, attachment.FileName, attachment.ObjectKey,
		attachment.ContentType, attachment.SizeBytes,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepo) GetByID(ctx context.Context, id int64) (*models.TaskAttachment, error) {
	attachment := &models.TaskAttachment{}
	query := `
		SELECT id, task_id, user_id, file_name, object_key, content_type, size_bytes, created_at
		FROM task_attachments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&attachment.ID, &attachment.TaskID, &attachment.UserID, &attachment.FileName,
		&attachment.ObjectKey, &attachment.ContentType, &attachment.SizeBytes, &attachment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *attachmentRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.TaskAttachment, error) {
	query := `
		SELECT id, task_id, user_id, file_name, object_key, content_type, size_bytes, created_at
		FROM task_attachments
		WHERE task_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.TaskAttachment
	for rows.Next() {
		attachment := &models.TaskAttachment{}
		if err := rows.Scan(
			&attachment.ID, &attachment.TaskID, &attachment.UserID, &attachment.FileName,
			&attachment.ObjectKey, &attachment.ContentType, &attachment.SizeBytes, &attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, rows.Err()
}

func (r *attachmentRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM task_attachments WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
