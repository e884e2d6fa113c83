package services

import (
	"testing"

	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"github.com/pairconnect/pair-connect-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService

	junior *models.Level
	python *models.ProgLanguage
	goLang *models.ProgLanguage
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Level{},
		&models.ProgLanguage{},
		&models.User{},
		&models.Project{},
		&models.Session{},
		&models.SessionParticipant{},
		&models.InterestedParticipant{},
	)
	suite.Require().NoError(err)

	projectRepo := repository.NewProjectRepository(suite.db)
	skillRepo := repository.NewSkillRepository(suite.db)
	suite.service = NewProjectService(projectRepo, skillRepo)

	suite.junior = &models.Level{Name: "Junior"}
	suite.Require().NoError(suite.db.Create(suite.junior).Error)
	suite.python = &models.ProgLanguage{Name: "Python"}
	suite.Require().NoError(suite.db.Create(suite.python).Error)
	suite.goLang = &models.ProgLanguage{Name: "Go"}
	suite.Require().NoError(suite.db.Create(suite.goLang).Error)
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ProjectServiceTestSuite) createInput(ownerID uint64) CreateProjectInput {
	return CreateProjectInput{
		OwnerID:     ownerID,
		Name:        "Test Project",
		Stack:       models.StackBackend,
		LevelID:     suite.junior.ID,
		LanguageIDs: []uint64{suite.python.ID},
	}
}

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	owner := suite.createTestUser("owner")

	project, err := suite.service.CreateProject(suite.createInput(owner.ID))

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StackBackend, project.Stack)
	assert.Equal(suite.T(), "Junior", project.Level.Name)
	suite.Require().Len(project.Languages, 1)
	assert.Equal(suite.T(), "Python", project.Languages[0].Name)
	assert.True(suite.T(), project.Active)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RequiresLanguages() {
	owner := suite.createTestUser("owner")

	input := suite.createInput(owner.ID)
	input.LanguageIDs = nil

	_, err := suite.service.CreateProject(input)

	assert.ErrorIs(suite.T(), err, ErrAtLeastOneLanguage)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RejectsUnknownStack() {
	owner := suite.createTestUser("owner")

	input := suite.createInput(owner.ID)
	input.Stack = "DevOps"

	_, err := suite.service.CreateProject(input)

	assert.ErrorIs(suite.T(), err, ErrInvalidStack)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RejectsUnknownLevel() {
	owner := suite.createTestUser("owner")

	input := suite.createInput(owner.ID)
	input.LevelID = 999

	_, err := suite.service.CreateProject(input)

	assert.ErrorIs(suite.T(), err, ErrLevelNotFound)
}

func (suite *ProjectServiceTestSuite) TestListProjects_Paginates() {
	owner := suite.createTestUser("owner")

	for _, name := range []string{"First", "Second", "Third"} {
		input := suite.createInput(owner.ID)
		input.Name = name
		_, err := suite.service.CreateProject(input)
		suite.Require().NoError(err)
	}

	page, total, err := suite.service.ListProjects(utils.PaginationParams{Page: 1, Limit: 2, Offset: 0})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), page, 2)

	rest, total, err := suite.service.ListProjects(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), rest, 1)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_OnlyOwner() {
	owner := suite.createTestUser("owner")
	stranger := suite.createTestUser("stranger")

	project, err := suite.service.CreateProject(suite.createInput(owner.ID))
	suite.Require().NoError(err)

	name := "Renamed"
	_, err = suite.service.UpdateProject(project.ID, stranger.ID, UpdateProjectInput{Name: &name})

	assert.ErrorIs(suite.T(), err, ErrNotProjectOwner)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ReplacesLanguages() {
	owner := suite.createTestUser("owner")

	project, err := suite.service.CreateProject(suite.createInput(owner.ID))
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateProject(project.ID, owner.ID, UpdateProjectInput{
		LanguageIDs: &[]uint64{suite.goLang.ID},
	})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Languages, 1)
	assert.Equal(suite.T(), "Go", updated.Languages[0].Name)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_CannotClearLanguages() {
	owner := suite.createTestUser("owner")

	project, err := suite.service.CreateProject(suite.createInput(owner.ID))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateProject(project.ID, owner.ID, UpdateProjectInput{
		LanguageIDs: &[]uint64{},
	})

	assert.ErrorIs(suite.T(), err, ErrAtLeastOneLanguage)
}

func (suite *ProjectServiceTestSuite) TestDeleteProject_CascadesSessions() {
	owner := suite.createTestUser("owner")

	project, err := suite.service.CreateProject(suite.createInput(owner.ID))
	suite.Require().NoError(err)

	backend := models.StackBackend
	session := &models.Session{
		ProjectID: project.ID,
		HostID:    owner.ID,
		Name:      "Doomed session",
		Stack:     &backend,
		LevelID:   &suite.junior.ID,
	}
	suite.Require().NoError(suite.db.Create(session).Error)

	suite.Require().NoError(suite.service.DeleteProject(project.ID, owner.ID))

	var count int64
	suite.db.Model(&models.Session{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	_, err = suite.service.GetProject(project.ID)
	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
