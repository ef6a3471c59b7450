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

type UserRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo UserRepository
	ctx  context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepository(mock)
	suite.ctx = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) userRow(user *models.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "password_hash",
		"created_at", "updated_at", "last_login", "is_active", "email_confirmed",
		"failed_login_attempts", "lockout_end",
	}).AddRow(
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt, user.LastLogin, user.IsActive, user.EmailConfirmed,
		user.FailedLoginAttempts, user.LockoutEnd,
	)
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}
	now := time.Now()

	suite.mock.ExpectQuery(`
		INSERT INTO users \(first_name, last_name, email, password_hash, is_active, email_confirmed, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\), NOW\(\)\)
		RETURNING id, created_at, updated_at
	`).WithArgs(user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsActive, user.EmailConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	err := suite.repo.Create(suite.ctx, user)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), user.ID)
	assert.Equal(suite.T(), now, user.CreatedAt)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Success() {
	user := &models.User{
		ID:           7,
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		IsActive:     true,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(suite.userRow(user))

	got, err := suite.repo.GetByEmail(suite.ctx, user.Email)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, got.ID)
	assert.Equal(suite.T(), user.Email, got.Email)
	assert.True(suite.T(), got.IsActive)
}

func (suite *UserRepoTestSuite) TestGetByEmail_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := suite.repo.GetByEmail(suite.ctx, "nobody@example.com")
	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *UserRepoTestSuite) TestGetByID_Success() {
	user := &models.User{
		ID:           7,
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		IsActive:     true,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(user.ID).
		WillReturnRows(suite.userRow(user))

	got, err := suite.repo.GetByID(suite.ctx, user.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.Email, got.Email)
}

func (suite *UserRepoTestSuite) TestExistsByEmail() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs("grace@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := suite.repo.ExistsByEmail(suite.ctx, "grace@example.com")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = suite.repo.ExistsByEmail(suite.ctx, "nobody@example.com")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

func (suite *UserRepoTestSuite) TestRecordLoginSuccess() {
	at := time.Now()

	suite.mock.ExpectExec(`
		UPDATE users
		SET last_login = \$1, failed_login_attempts = 0, lockout_end = NULL, updated_at = NOW\(\)
		WHERE id = \$2
	`).WithArgs(at, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.RecordLoginSuccess(suite.ctx, 7, at)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestRecordLoginFailure_WithLockout() {
	end := time.Now().Add(15 * time.Minute)

	suite.mock.ExpectExec(`
		UPDATE users
		SET failed_login_attempts = \$1, lockout_end = \$2, updated_at = NOW\(\)
		WHERE id = \$3
	`).WithArgs(5, &end, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.RecordLoginFailure(suite.ctx, 7, 5, &end)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestRecordLoginFailure_BelowThreshold() {
	suite.mock.ExpectExec(`
		UPDATE users
		SET failed_login_attempts = \$1, lockout_end = \$2, updated_at = NOW\(\)
		WHERE id = \$3
	`).WithArgs(2, (*time.Time)(nil), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.RecordLoginFailure(suite.ctx, 7, 2, nil)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestDeactivate() {
	suite.mock.ExpectExec(`UPDATE users SET is_active = FALSE, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Deactivate(suite.ctx, 7)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestClearExpiredLockouts() {
	now := time.Now()

	suite.mock.ExpectExec(`
		UPDATE users
		SET failed_login_attempts = 0, lockout_end = NULL, updated_at = NOW\(\)
		WHERE lockout_end IS NOT NULL AND lockout_end <= \$1
	`).WithArgs(now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	cleared, err := suite.repo.ClearExpiredLockouts(suite.ctx, now)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), cleared)
}
