package repositories

import (
	"context"
	"time"

	"taskboard/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	CountDueBefore(ctx context.Context, userID int64, cutoff time.Time) (int, error)
	ListUserIDsWithDueTasks(ctx context.Context, cutoff time.Time) ([]int64, error)
}

type taskRepo struct {
	db Database
}

func NewTaskRepository(db Database) TaskRepository {
	return &taskRepo{db: db}
}

const taskColumns = `id, title, description, priority, is_collapsed, due_date, user_id, project_id, created_at, updated_at`

func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, priority, is_collapsed, due_date, user_id, project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.Priority, task.IsCollapsed, task.DueDate, task.UserID, task.ProjectID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Priority, &task.IsCollapsed,
		&task.DueDate, &task.UserID, &task.ProjectID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Priority, &task.IsCollapsed,
			&task.DueDate, &task.UserID, &task.ProjectID, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, is_collapsed = $4, due_date = $5, project_id = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query,
		task.Title, task.Description, task.Priority, task.IsCollapsed, task.DueDate, task.ProjectID, task.ID,
	)
	return err
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *taskRepo) CountDueBefore(ctx context.Context, userID int64, cutoff time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND due_date IS NOT NULL AND due_date <= $2`
	if err := r.db.QueryRow(ctx, query, userID, cutoff).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepo) ListUserIDsWithDueTasks(ctx context.Context, cutoff time.Time) ([]int64, error) {
	query := `SELECT DISTINCT user_id FROM tasks WHERE due_date IS NOT NULL AND due_date <= $1`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
