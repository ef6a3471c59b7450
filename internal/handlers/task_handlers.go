package handlers

import (
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/common"
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

// TaskHandlers handles task CRUD requests for the authenticated user.
type TaskHandlers struct {
	taskService services.TaskService
}

func NewTaskHandlers(taskService services.TaskService) *TaskHandlers {
	return &TaskHandlers{taskService: taskService}
}

// ListTasks returns the caller's tasks.
func (h *TaskHandlers) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tasks, err := h.taskService.List(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list tasks")
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task owned by the caller.
func (h *TaskHandlers) GetTask(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	task, err := h.taskService.GetByID(ctx, userID, id)
	if err != nil {
		return sendResourceError(c, "Task", err)
	}

	return c.JSON(http.StatusOK, task)
}

// CreateTaskRequest represents the task creation payload
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    int        `json:"priority"`
	IsCollapsed bool       `json:"is_collapsed"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   *int64     `json:"project_id"`
}

// CreateTask creates a task owned by the caller. A project id, when present,
// must reference one of the caller's own projects.
func (h *TaskHandlers) CreateTask(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		IsCollapsed: req.IsCollapsed,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
	if err := h.taskService.Create(ctx, userID, task); err != nil {
		return sendResourceError(c, "Task", err)
	}

	c.Response().Header().Set("Location", fmt.Sprintf("/tasks/%d", task.ID))
	return c.JSON(http.StatusCreated, task)
}

// UpdateTaskRequest represents the full task object expected on PUT
type UpdateTaskRequest struct {
	ID          int64      `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    int        `json:"priority"`
	IsCollapsed bool       `json:"is_collapsed"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   *int64     `json:"project_id"`
}

// UpdateTask replaces a task's mutable fields.
func (h *TaskHandlers) UpdateTask(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}
	if id != req.ID {
		return common.SendClientError(c, "Id mismatch")
	}

	task := &models.Task{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		IsCollapsed: req.IsCollapsed,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
	if err := h.taskService.Update(ctx, userID, task); err != nil {
		return sendResourceError(c, "Task", err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteTask removes a task.
func (h *TaskHandlers) DeleteTask(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.taskService.Delete(ctx, userID, id); err != nil {
		return sendResourceError(c, "Task", err)
	}

	return c.NoContent(http.StatusNoContent)
}
