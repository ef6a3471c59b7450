package repositories

import (
	"context"
	"time"

	"taskboard/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error
	RecordLoginFailure(ctx context.Context, id int64, attempts int, lockoutEnd *time.Time) error
	Deactivate(ctx context.Context, id int64) error
	ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error)
}

type userRepo struct {
	db Database
}

func NewUserRepository(db Database) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at, last_login, is_active, email_confirmed, failed_login_attempts, lockout_end`

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, is_active, email_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsActive, user.EmailConfirmed,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLogin, &user.IsActive, &user.EmailConfirmed,
		&user.FailedLoginAttempts, &user.LockoutEnd,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLogin, &user.IsActive, &user.EmailConfirmed,
		&user.FailedLoginAttempts, &user.LockoutEnd,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE email = $1`
	if err := r.db.QueryRow(ctx, query, email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE users
		SET last_login = $1, failed_login_attempts = 0, lockout_end = NULL, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, at, id)
	return err
}

func (r *userRepo) RecordLoginFailure(ctx context.Context, id int64, attempts int, lockoutEnd *time.Time) error {
	query := `
		UPDATE users
		SET failed_login_attempts = $1, lockout_end = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, attempts, lockoutEnd, id)
	return err
}

func (r *userRepo) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE users
		SET failed_login_attempts = 0, lockout_end = NULL, updated_at = NOW()
		WHERE lockout_end IS NOT NULL AND lockout_end <= $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
