package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/database"
	"github.com/pairconnect/pair-connect-api/internal/mailer"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"github.com/pairconnect/pair-connect-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SessionHandlerTestSuite defines the test suite for SessionHandler
type SessionHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SessionHandler

	junior *models.Level
	python *models.ProgLanguage
}

// SetupTest runs before each test
func (suite *SessionHandlerTestSuite) SetupTest() {
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

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	sessionRepo := repository.NewSessionRepository(suite.db)
	skillRepo := repository.NewSkillRepository(suite.db)

	authService := services.NewAuthService(userRepo, skillRepo)
	sessionService := services.NewSessionService(sessionRepo, projectRepo, userRepo, skillRepo)
	developerSuggestions := services.NewDeveloperSuggestionService(userRepo, sessionRepo)
	sessionSuggestions := services.NewSessionSuggestionService(sessionRepo)
	notificationService := services.NewNotificationService(mailer.NewNoopMailer(), "http://localhost:5173")

	suite.handler = NewSessionHandler(
		sessionService, developerSuggestions, sessionSuggestions, notificationService, authService)

	gin.SetMode(gin.TestMode)

	suite.junior = &models.Level{Name: "Junior"}
	suite.Require().NoError(suite.db.Create(suite.junior).Error)
	suite.python = &models.ProgLanguage{Name: "Python"}
	suite.Require().NoError(suite.db.Create(suite.python).Error)
}

// TearDownTest runs after each test
func (suite *SessionHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *SessionHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *SessionHandlerTestSuite) createTestProject(ownerID uint64) *models.Project {
	project := &models.Project{
		OwnerID: ownerID,
		Name:    "Test Project",
		Active:  true,
		Stack:   models.StackBackend,
		LevelID: suite.junior.ID,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	suite.Require().NoError(suite.db.Model(project).Association("Languages").Append(suite.python))
	return project
}

func (suite *SessionHandlerTestSuite) createTestSession(host *models.User, project *models.Project, participantLimit int) *models.Session {
	backend := models.StackBackend
	session := &models.Session{
		ProjectID:        project.ID,
		HostID:           host.ID,
		Name:             "Test Session",
		ScheduleTime:     time.Now().Add(24 * time.Hour),
		Duration:         2 * time.Hour,
		Stack:            &backend,
		LevelID:          &suite.junior.ID,
		ParticipantLimit: participantLimit,
		Active:           true,
		Public:           true,
	}
	suite.Require().NoError(suite.db.Create(session).Error)
	suite.Require().NoError(suite.db.Model(session).Association("Languages").Append(suite.python))
	return session
}

// createAuthContext builds a request context with an authenticated user
func (suite *SessionHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// setSessionContext loads the session with relations and stores it the way
// RequireSessionAccess does
func (suite *SessionHandlerTestSuite) setSessionContext(c *gin.Context, sessionID uint64) {
	var session models.Session
	err := suite.db.
		Preload("Project").
		Preload("Host").
		Preload("Level").
		Preload("Languages").
		Preload("Participants").
		Preload("Participants.User").
		First(&session, sessionID).Error
	suite.Require().NoError(err)
	c.Set(constants.ContextKeySession, session)
}

// Tests

func (suite *SessionHandlerTestSuite) TestCreateSession_Success() {
	host := suite.createTestUser("host")
	project := suite.createTestProject(host.ID)

	payload := map[string]any{
		"project_id":         project.ID,
		"name":               "Evening pairing",
		"schedule_date_time": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("POST", "/api/sessions", body, host.ID)
	suite.handler.CreateSession(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	// Everything unset inherits from the unambiguous project.
	assert.Equal(suite.T(), "Backend", response["stack"])
	languages := response["languages"].([]any)
	suite.Require().Len(languages, 1)
}

func (suite *SessionHandlerTestSuite) TestCreateSession_IncompatibleStack() {
	host := suite.createTestUser("host")
	project := suite.createTestProject(host.ID)

	payload := map[string]any{
		"project_id":         project.ID,
		"name":               "Evening pairing",
		"schedule_date_time": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"stack":              "Frontend",
	}
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("POST", "/api/sessions", body, host.ID)
	suite.handler.CreateSession(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INCOMPATIBLE_STACK", response["code"])
}

func (suite *SessionHandlerTestSuite) TestExpressInterest_Success() {
	host := suite.createTestUser("host")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	c, w := suite.createAuthContext("POST", "/api/sessions/1/express-interest", nil, dev.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.ExpressInterest(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *SessionHandlerTestSuite) TestExpressInterest_DuplicateConflict() {
	host := suite.createTestUser("host")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	c, w := suite.createAuthContext("POST", "/api/sessions/1/express-interest", nil, dev.ID)
	suite.setSessionContext(c, session.ID)
	suite.handler.ExpressInterest(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("POST", "/api/sessions/1/express-interest", nil, dev.ID)
	suite.setSessionContext(c, session.ID)
	suite.handler.ExpressInterest(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *SessionHandlerTestSuite) TestExpressInterest_HostRejected() {
	host := suite.createTestUser("host")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	c, w := suite.createAuthContext("POST", "/api/sessions/1/express-interest", nil, host.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.ExpressInterest(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *SessionHandlerTestSuite) TestConfirmParticipant_Success() {
	host := suite.createTestUser("host")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	body, err := json.Marshal(map[string]any{"developer_id": dev.ID})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("POST", "/api/sessions/1/confirm-participant", body, host.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.ConfirmParticipant(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	participants := response["participants"].([]any)
	suite.Require().Len(participants, 1)
}

func (suite *SessionHandlerTestSuite) TestConfirmParticipant_FullConflict() {
	host := suite.createTestUser("host")
	first := suite.createTestUser("first")
	second := suite.createTestUser("second")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 1)

	body, err := json.Marshal(map[string]any{"developer_id": first.ID})
	suite.Require().NoError(err)
	c, w := suite.createAuthContext("POST", "/api/sessions/1/confirm-participant", body, host.ID)
	suite.setSessionContext(c, session.ID)
	suite.handler.ConfirmParticipant(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	body, err = json.Marshal(map[string]any{"developer_id": second.ID})
	suite.Require().NoError(err)
	c, w = suite.createAuthContext("POST", "/api/sessions/1/confirm-participant", body, host.ID)
	suite.setSessionContext(c, session.ID)
	suite.handler.ConfirmParticipant(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *SessionHandlerTestSuite) TestConfirmParticipant_NonHostForbidden() {
	host := suite.createTestUser("host")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	body, err := json.Marshal(map[string]any{"developer_id": dev.ID})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("POST", "/api/sessions/1/confirm-participant", body, dev.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.ConfirmParticipant(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *SessionHandlerTestSuite) TestSuggestedDevelopers_PublicFieldsOnly() {
	host := suite.createTestUser("host")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	backend := models.StackBackend
	candidate := &models.User{
		Username:     "candidate",
		Email:        "candidate@example.com",
		PasswordHash: "hashedpassword",
		Telephone:    "555-0100",
		Stack:        &backend,
		LevelID:      &suite.junior.ID,
	}
	suite.Require().NoError(suite.db.Create(candidate).Error)
	suite.Require().NoError(suite.db.Model(candidate).Association("Languages").Append(suite.python))

	c, w := suite.createAuthContext("GET", "/api/sessions/1/suggested-developers", nil, host.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.SuggestedDevelopers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suggested := response["suggested_developers"].([]any)
	suite.Require().Len(suggested, 1)

	// Contact details never leak through the public summary.
	assert.NotContains(suite.T(), w.Body.String(), "candidate@example.com")
	assert.NotContains(suite.T(), w.Body.String(), "555-0100")
}

func (suite *SessionHandlerTestSuite) TestCheckInterest() {
	host := suite.createTestUser("host")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject(host.ID)
	session := suite.createTestSession(host, project, 0)

	suite.Require().NoError(suite.db.Create(&models.InterestedParticipant{
		SessionID: session.ID, UserID: dev.ID,
	}).Error)

	c, w := suite.createAuthContext("GET", "/api/sessions/1/check-interest", nil, dev.ID)
	suite.setSessionContext(c, session.ID)

	suite.handler.CheckInterest(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["interested"])
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}
