package handlers

import (
	"fmt"
	"net/http"

	"taskboard/internal/common"
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

// ProjectHandlers handles project CRUD requests for the authenticated user.
type ProjectHandlers struct {
	projectService services.ProjectService
}

func NewProjectHandlers(projectService services.ProjectService) *ProjectHandlers {
	return &ProjectHandlers{projectService: projectService}
}

// ListProjects returns the caller's projects.
func (h *ProjectHandlers) ListProjects(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	projects, err := h.projectService.List(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list projects")
	}
	if projects == nil {
		projects = []*models.Project{}
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject returns a single project owned by the caller.
func (h *ProjectHandlers) GetProject(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "project id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	project, err := h.projectService.GetByID(ctx, userID, id)
	if err != nil {
		return sendResourceError(c, "Project", err)
	}

	return c.JSON(http.StatusOK, project)
}

// CreateProjectRequest represents the project creation payload
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandlers) CreateProject(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projectService.Create(ctx, userID, project); err != nil {
		return common.SendServerError(c, "Failed to create project")
	}

	c.Response().Header().Set("Location", fmt.Sprintf("/projects/%d", project.ID))
	return c.JSON(http.StatusCreated, project)
}

// UpdateProjectRequest represents the full project object expected on PUT
type UpdateProjectRequest struct {
	ID          int64  `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateProject replaces a project's mutable fields.
func (h *ProjectHandlers) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "project id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}
	if id != req.ID {
		return common.SendClientError(c, "Id mismatch")
	}

	project := &models.Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projectService.Update(ctx, userID, project); err != nil {
		return sendResourceError(c, "Project", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteProject removes a project and, via the store cascade, its tasks.
func (h *ProjectHandlers) DeleteProject(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "project id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.projectService.Delete(ctx, userID, id); err != nil {
		return sendResourceError(c, "Project", err)
	}

	return c.NoContent(http.StatusNoContent)
}
