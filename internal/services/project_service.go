package services

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/models"
	"taskboard/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrNotOwner = errors.New("resource owned by another user")
)

// ProjectService enforces ownership on every single-resource operation:
// locate first, then authorize, then act. List and create use the caller's
// id as the implicit filter/owner.
type ProjectService interface {
	Create(ctx context.Context, userID int64, project *models.Project) error
	GetByID(ctx context.Context, userID, id int64) (*models.Project, error)
	List(ctx context.Context, userID int64) ([]*models.Project, error)
	Update(ctx context.Context, userID int64, project *models.Project) error
	Delete(ctx context.Context, userID, id int64) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) Create(ctx context.Context, userID int64, project *models.Project) error {
	project.UserID = userID
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (s *projectService) GetByID(ctx context.Context, userID, id int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.UserID != userID {
		return nil, ErrNotOwner
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, userID int64) ([]*models.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, userID int64, project *models.Project) error {
	existing, err := s.GetByID(ctx, userID, project.ID)
	if err != nil {
		return err
	}

	existing.Name = project.Name
	existing.Description = project.Description
	if err := s.projectRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (s *projectService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
