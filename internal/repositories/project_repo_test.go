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

type ProjectRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo ProjectRepository
	ctx  context.Context
}

func (suite *ProjectRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProjectRepository(mock)
	suite.ctx = context.Background()
}

func (suite *ProjectRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProjectRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepoTestSuite))
}

func (suite *ProjectRepoTestSuite) TestCreate_Success() {
	project := &models.Project{
		Name:        "Home Renovation",
		Description: "Kitchen and bathroom",
		UserID:      5,
	}
	now := time.Now()

	suite.mock.ExpectQuery(`
		INSERT INTO projects \(name, description, user_id, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, NOW\(\), NOW\(\)\)
		RETURNING id, created_at, updated_at
	`).WithArgs(project.Name, project.Description, project.UserID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	err := suite.repo.Create(suite.ctx, project)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(10), project.ID)
}

func (suite *ProjectRepoTestSuite) TestGetByID_Success() {
	now := time.Now()

	suite.mock.ExpectQuery(`
		SELECT id, name, description, user_id, created_at, updated_at
		FROM projects
		WHERE id = \$1
	`).WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "user_id", "created_at", "updated_at"}).
			AddRow(int64(10), "Home Renovation", "Kitchen and bathroom", int64(5), now, now))

	project, err := suite.repo.GetByID(suite.ctx, 10)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Home Renovation", project.Name)
	assert.Equal(suite.T(), int64(5), project.UserID)
}

func (suite *ProjectRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, user_id, created_at, updated_at
		FROM projects
		WHERE id = \$1
	`).WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	project, err := suite.repo.GetByID(suite.ctx, 99)
	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *ProjectRepoTestSuite) TestListByUser() {
	now := time.Now()

	suite.mock.ExpectQuery(`
		SELECT id, name, description, user_id, created_at, updated_at
		FROM projects
		WHERE user_id = \$1
		ORDER BY created_at DESC
	`).WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "user_id", "created_at", "updated_at"}).
			AddRow(int64(11), "Project B", "", int64(5), now, now).
			AddRow(int64(10), "Project A", "", int64(5), now, now))

	projects, err := suite.repo.ListByUser(suite.ctx, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), projects, 2)
	assert.Equal(suite.T(), "Project B", projects[0].Name)
}

func (suite *ProjectRepoTestSuite) TestListByUser_Empty() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, user_id, created_at, updated_at
		FROM projects
		WHERE user_id = \$1
		ORDER BY created_at DESC
	`).WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "user_id", "created_at", "updated_at"}))

	projects, err := suite.repo.ListByUser(suite.ctx, 5)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), projects)
}

func (suite *ProjectRepoTestSuite) TestUpdate() {
	project := &models.Project{ID: 10, Name: "New Name", Description: "new"}

	suite.mock.ExpectExec(`
		UPDATE projects
		SET name = \$1, description = \$2, updated_at = NOW\(\)
		WHERE id = \$3
	`).WithArgs(project.Name, project.Description, project.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.ctx, project)
	assert.NoError(suite.T(), err)
}

func (suite *ProjectRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, 10)
	assert.NoError(suite.T(), err)
}
