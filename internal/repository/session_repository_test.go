package repository

import (
	"testing"
	"time"

	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionRepo(t *testing.T) (SessionRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Level{},
		&models.ProgLanguage{},
		&models.User{},
		&models.Project{},
		&models.Session{},
		&models.SessionParticipant{},
		&models.InterestedParticipant{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewSessionRepository(db), db
}

func seedSession(t *testing.T, db *gorm.DB) (*models.Session, *models.User) {
	t.Helper()

	host := &models.User{Username: "host", Email: "host@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(host).Error)
	dev := &models.User{Username: "dev", Email: "dev@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(dev).Error)

	level := &models.Level{Name: "Junior"}
	require.NoError(t, db.Create(level).Error)

	project := &models.Project{
		OwnerID: host.ID,
		Name:    "Test Project",
		Stack:   models.StackBackend,
		LevelID: level.ID,
	}
	require.NoError(t, db.Create(project).Error)

	backend := models.StackBackend
	session := &models.Session{
		ProjectID:    project.ID,
		HostID:       host.ID,
		Name:         "Test Session",
		ScheduleTime: time.Now().Add(24 * time.Hour),
		Duration:     2 * time.Hour,
		Stack:        &backend,
		LevelID:      &level.ID,
	}
	require.NoError(t, db.Create(session).Error)

	return session, dev
}

// TestAddInterest_DuplicatePair covers two concurrent requests for the same
// (session, user) pair reaching the insert together: the composite primary
// key rejects the second one, and the repository must surface that as
// ErrDuplicateInterest rather than a raw driver error.
func TestAddInterest_DuplicatePair(t *testing.T) {
	repo, db := setupSessionRepo(t)
	session, dev := seedSession(t, db)

	err := repo.AddInterest(&models.InterestedParticipant{SessionID: session.ID, UserID: dev.ID})
	require.NoError(t, err)

	err = repo.AddInterest(&models.InterestedParticipant{SessionID: session.ID, UserID: dev.ID})
	assert.ErrorIs(t, err, ErrDuplicateInterest)

	var count int64
	db.Model(&models.InterestedParticipant{}).
		Where("session_id = ?", session.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
