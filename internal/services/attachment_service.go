package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const presignedURLExpiry = 15 * time.Minute

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AttachmentService stores task attachments in object storage. Every
// operation authorizes against the owning task first.
type AttachmentService interface {
	Upload(ctx context.Context, userID, taskID int64, input UploadInput) (*models.TaskAttachment, error)
	List(ctx context.Context, userID, taskID int64) ([]*models.TaskAttachment, error)
	GetDownloadURL(ctx context.Context, userID, taskID, attachmentID int64) (string, error)
	Delete(ctx context.Context, userID, taskID, attachmentID int64) error
}

type attachmentService struct {
	attachmentRepo repositories.AttachmentRepository
	tasks          TaskService
	storage        ObjectStorage
	bucket         string
}

func NewAttachmentService(attachmentRepo repositories.AttachmentRepository, tasks TaskService, storage ObjectStorage, bucket string) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		tasks:          tasks,
		storage:        storage,
		bucket:         bucket,
	}
}

func (s *attachmentService) Upload(ctx context.Context, userID, taskID int64, input UploadInput) (*models.TaskAttachment, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("tasks/%d/%s", taskID, uuid.NewString())
	if err := s.storage.Upload(ctx, s.bucket, objectKey, input.ContentType, input.Reader, input.Size); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	attachment := &models.TaskAttachment{
		TaskID:      taskID,
		UserID:      userID,
		FileName:    input.FileName,
		ObjectKey:   objectKey,
		ContentType: input.ContentType,
		SizeBytes:   input.Size,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// the object is orphaned if the row insert fails; best effort cleanup
		if rmErr := s.storage.Remove(ctx, s.bucket, objectKey); rmErr != nil {
			log.Printf("Failed to remove orphaned object %s: %v", objectKey, rmErr)
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return attachment, nil
}

func (s *attachmentService) List(ctx context.Context, userID, taskID int64) ([]*models.TaskAttachment, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.ListByTask(ctx, taskID)
}

func (s *attachmentService) get(ctx context.Context, userID, taskID, attachmentID int64) (*models.TaskAttachment, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if attachment.TaskID != taskID {
		return nil, ErrNotFound
	}
	return attachment, nil
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, userID, taskID, attachmentID int64) (string, error) {
	attachment, err := s.get(ctx, userID, taskID, attachmentID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.bucket, attachment.ObjectKey, presignedURLExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, userID, taskID, attachmentID int64) error {
	attachment, err := s.get(ctx, userID, taskID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if err := s.storage.Remove(ctx, s.bucket, attachment.ObjectKey); err != nil {
		log.Printf("Failed to remove object %s: %v", attachment.ObjectKey, err)
	}
	return nil
}
