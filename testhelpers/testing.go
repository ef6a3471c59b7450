package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/models"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=taskboard_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestUser creates a test user for testing
func SetupTestUser(t *testing.T, db *TestDB) *models.User {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// SetupTestProject creates a test project owned by the given user
func SetupTestProject(t *testing.T, db *TestDB, userID int64) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        "Test Project",
		Description: "Test project description",
		UserID:      userID,
	}

	query := `
		INSERT INTO projects (name, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		project.Name, project.Description, project.UserID).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return project
}

// SetupTestTask creates a test task owned by the given user
func SetupTestTask(t *testing.T, db *TestDB, userID int64, projectID *int64) *models.Task {
	t.Helper()

	description := "Test task description"
	due := time.Now().Add(48 * time.Hour)

	task := &models.Task{
		Title:       "Test Task",
		Description: &description,
		Priority:    1,
		DueDate:     &due,
		UserID:      userID,
		ProjectID:   projectID,
	}

	query := `
		INSERT INTO tasks (title, description, priority, is_collapsed, due_date, user_id, project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		task.Title, task.Description, task.Priority, task.IsCollapsed,
		task.DueDate, task.UserID, task.ProjectID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}

	return task
}
