package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// ErrProjectNotOwned rejects a task whose project id points at a project the
// caller doesn't own (or that doesn't exist).
var ErrProjectNotOwned = errors.New("project does not belong to task owner")

type TaskService interface {
	Create(ctx context.Context, userID int64, task *models.Task) error
	GetByID(ctx context.Context, userID, id int64) (*models.Task, error)
	List(ctx context.Context, userID int64) ([]*models.Task, error)
	Update(ctx context.Context, userID int64, task *models.Task) error
	Delete(ctx context.Context, userID, id int64) error
	CountDueWithin(ctx context.Context, userID int64, window time.Duration) (int, error)
}

type taskService struct {
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
}

func NewTaskService(taskRepo repositories.TaskRepository, projectRepo repositories.ProjectRepository) TaskService {
	return &taskService{taskRepo: taskRepo, projectRepo: projectRepo}
}

// checkProjectOwnership verifies the cross-entity invariant: a task may only
// reference a project owned by the same user.
func (s *taskService) checkProjectOwnership(ctx context.Context, userID int64, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	project, err := s.projectRepo.GetByID(ctx, *projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotOwned
		}
		return err
	}
	if project.UserID != userID {
		return ErrProjectNotOwned
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, userID int64, task *models.Task) error {
	if err := s.checkProjectOwnership(ctx, userID, task.ProjectID); err != nil {
		return err
	}
	task.UserID = userID
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *taskService) GetByID(ctx context.Context, userID, id int64) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotOwner
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, userID int64, task *models.Task) error {
	existing, err := s.GetByID(ctx, userID, task.ID)
	if err != nil {
		return err
	}
	if err := s.checkProjectOwnership(ctx, userID, task.ProjectID); err != nil {
		return err
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Priority = task.Priority
	existing.IsCollapsed = task.IsCollapsed
	existing.DueDate = task.DueDate
	existing.ProjectID = task.ProjectID
	if err := s.taskRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *taskService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *taskService) CountDueWithin(ctx context.Context, userID int64, window time.Duration) (int, error) {
	return s.taskRepo.CountDueBefore(ctx, userID, time.Now().Add(window))
}
