package repositories

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TaskRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo TaskRepository
	ctx  context.Context
}

func (suite *TaskRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTaskRepository(mock)
	suite.ctx = context.Background()
}

func (suite *TaskRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTaskRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepoTestSuite))
}

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func taskRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "description", "priority", "is_collapsed",
		"due_date", "user_id", "project_id", "created_at", "updated_at",
	})
}

func (suite *TaskRepoTestSuite) TestCreate_Success() {
	due := time.Now().Add(48 * time.Hour)
	task := &models.Task{
		Title:       "Buy paint",
		Description: stringPtr("Matte white"),
		Priority:    2,
		DueDate:     &due,
		UserID:      5,
		ProjectID:   int64Ptr(10),
	}
	now := time.Now()

	suite.mock.ExpectQuery(`
		INSERT INTO tasks \(title, description, priority, is_collapsed, due_date, user_id, project_id, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, NOW\(\), NOW\(\)\)
		RETURNING id, created_at, updated_at
	`).WithArgs(task.Title, task.Description, task.Priority, task.IsCollapsed, task.DueDate, task.UserID, task.ProjectID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	err := suite.repo.Create(suite.ctx, task)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), task.ID)
}

func (suite *TaskRepoTestSuite) TestCreate_WithoutOptionalFields() {
	task := &models.Task{Title: "Standalone task", UserID: 5}
	now := time.Now()

	suite.mock.ExpectQuery(`
		INSERT INTO tasks \(title, description, priority, is_collapsed, due_date, user_id, project_id, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, NOW\(\), NOW\(\)\)
		RETURNING id, created_at, updated_at
	`).WithArgs(task.Title, (*string)(nil), 0, false, (*time.Time)(nil), int64(5), (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(4), now, now))

	err := suite.repo.Create(suite.ctx, task)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), task.ProjectID)
}

func (suite *TaskRepoTestSuite) TestGetByID_Success() {
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(taskRows().
			AddRow(int64(3), "Buy paint", stringPtr("Matte white"), 2, false, (*time.Time)(nil), int64(5), int64Ptr(10), now, now))

	task, err := suite.repo.GetByID(suite.ctx, 3)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Buy paint", task.Title)
	assert.Equal(suite.T(), int64(5), task.UserID)
	assert.Equal(suite.T(), int64(10), *task.ProjectID)
}

func (suite *TaskRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	task, err := suite.repo.GetByID(suite.ctx, 99)
	assert.Nil(suite.T(), task)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *TaskRepoTestSuite) TestListByUser() {
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT .+ FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(5)).
		WillReturnRows(taskRows().
			AddRow(int64(4), "Task B", (*string)(nil), 0, false, (*time.Time)(nil), int64(5), (*int64)(nil), now, now).
			AddRow(int64(3), "Task A", (*string)(nil), 1, true, (*time.Time)(nil), int64(5), int64Ptr(10), now, now))

	tasks, err := suite.repo.ListByUser(suite.ctx, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), tasks, 2)
	assert.Equal(suite.T(), "Task B", tasks[0].Title)
	assert.True(suite.T(), tasks[1].IsCollapsed)
}

func (suite *TaskRepoTestSuite) TestUpdate() {
	due := time.Now().Add(24 * time.Hour)
	task := &models.Task{
		ID:          3,
		Title:       "Buy more paint",
		Description: stringPtr("Gloss"),
		Priority:    1,
		IsCollapsed: true,
		DueDate:     &due,
		ProjectID:   int64Ptr(10),
	}

	suite.mock.ExpectExec(`
		UPDATE tasks
		SET title = \$1, description = \$2, priority = \$3, is_collapsed = \$4, due_date = \$5, project_id = \$6, updated_at = NOW\(\)
		WHERE id = \$7
	`).WithArgs(task.Title, task.Description, task.Priority, task.IsCollapsed, task.DueDate, task.ProjectID, task.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.ctx, task)
	assert.NoError(suite.T(), err)
}

func (suite *TaskRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, 3)
	assert.NoError(suite.T(), err)
}

func (suite *TaskRepoTestSuite) TestCountDueBefore() {
	cutoff := time.Now().Add(24 * time.Hour)

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE user_id = \$1 AND due_date IS NOT NULL AND due_date <= \$2`).
		WithArgs(int64(5), cutoff).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	count, err := suite.repo.CountDueBefore(suite.ctx, 5, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, count)
}

func (suite *TaskRepoTestSuite) TestListUserIDsWithDueTasks() {
	cutoff := time.Now().Add(24 * time.Hour)

	suite.mock.ExpectQuery(`SELECT DISTINCT user_id FROM tasks WHERE due_date IS NOT NULL AND due_date <= \$1`).
		WithArgs(cutoff).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(5)).AddRow(int64(7)))

	userIDs, err := suite.repo.ListUserIDsWithDueTasks(suite.ctx, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{5, 7}, userIDs)
}
