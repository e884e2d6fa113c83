package repository

import (
	"errors"
	"fmt"

	"github.com/pairconnect/pair-connect-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateInterest is returned when interest for a (session, user)
	// pair already exists.
	ErrDuplicateInterest = errors.New("session repository: interest already recorded")
	// ErrDuplicateParticipant is returned when a user is already a confirmed
	// participant of the session.
	ErrDuplicateParticipant = errors.New("session repository: participant already confirmed")
	// ErrParticipantLimitReached is returned when confirming would exceed the
	// session's participant limit.
	ErrParticipantLimitReached = errors.New("session repository: participant limit reached")
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create creates a session together with its language set
func (r *GormSessionRepository) Create(session *models.Session, languages []models.ProgLanguage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		if len(languages) > 0 {
			if err := tx.Model(session).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a session by ID with optional preloading
func (r *GormSessionRepository) FindByID(id uint64, preload ...string) (*models.Session, error) {
	var session models.Session
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&session, id).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ListByProject returns all sessions of a project ordered by schedule
func (r *GormSessionRepository) ListByProject(projectID uint64) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.
		Where("project_id = ?", projectID).
		Order("sessions.schedule_time ASC, sessions.id ASC").
		Preload("Host").
		Preload("Level").
		Preload("Languages").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListUpcoming returns suggestion candidates: future sessions not hosted by
// the user that share at least one language with them. The language overlap
// is a hard gate; ordering by schedule then id keeps output deterministic.
func (r *GormSessionRepository) ListUpcoming(filter SessionSuggestionFilter) ([]models.Session, error) {
	if len(filter.LanguageIDs) == 0 {
		return []models.Session{}, nil
	}

	var sessions []models.Session
	err := r.db.Model(&models.Session{}).
		Where("sessions.host_id <> ?", filter.ExcludeHostID).
		Where("sessions.schedule_time >= ?", filter.From).
		Where(
			"EXISTS (SELECT 1 FROM session_languages WHERE session_languages.session_id = sessions.id AND session_languages.prog_language_id IN ?)",
			filter.LanguageIDs,
		).
		Order("sessions.schedule_time ASC, sessions.id ASC").
		Preload("Project").
		Preload("Host").
		Preload("Level").
		Preload("Languages").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListHostedBy returns sessions hosted by a user
func (r *GormSessionRepository) ListHostedBy(userID uint64) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.
		Where("host_id = ?", userID).
		Order("sessions.schedule_time ASC, sessions.id ASC").
		Preload("Project").
		Preload("Level").
		Preload("Languages").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListInterestedBy returns sessions a user expressed interest in
func (r *GormSessionRepository) ListInterestedBy(userID uint64) ([]models.Session, error) {
	return r.listByJoin(userID, "interested_participants")
}

// ListParticipating returns sessions a user is confirmed for
func (r *GormSessionRepository) ListParticipating(userID uint64) ([]models.Session, error) {
	return r.listByJoin(userID, "session_participants")
}

func (r *GormSessionRepository) listByJoin(userID uint64, joinTable string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Model(&models.Session{}).
		Joins(fmt.Sprintf("JOIN %s ON %s.session_id = sessions.id", joinTable, joinTable)).
		Where(fmt.Sprintf("%s.user_id = ?", joinTable), userID).
		Order("sessions.schedule_time ASC, sessions.id ASC").
		Preload("Project").
		Preload("Host").
		Preload("Level").
		Preload("Languages").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update saves session fields and optionally replaces the language set
func (r *GormSessionRepository) Update(session *models.Session, languages []models.ProgLanguage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}

		if languages != nil {
			if err := tx.Model(session).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a session with its interest and participant records
func (r *GormSessionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).
			Delete(&models.InterestedParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).
			Delete(&models.SessionParticipant{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Session{}, id).Error
	})
}

// InterestedUserIDs returns ids of users interested in a session
func (r *GormSessionRepository) InterestedUserIDs(sessionID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.InterestedParticipant{}).
		Where("session_id = ?", sessionID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// ParticipantUserIDs returns ids of confirmed participants
func (r *GormSessionRepository) ParticipantUserIDs(sessionID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.SessionParticipant{}).
		Where("session_id = ?", sessionID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// HasInterest reports whether a user already expressed interest
func (r *GormSessionRepository) HasInterest(sessionID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.InterestedParticipant{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasParticipant reports whether a user is a confirmed participant
func (r *GormSessionRepository) HasParticipant(sessionID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.SessionParticipant{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddInterest records interest. The composite primary key on
// (session_id, user_id) makes the insert the serialization point for
// concurrent duplicate requests.
func (r *GormSessionRepository) AddInterest(interest *models.InterestedParticipant) error {
	err := r.db.Create(interest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateInterest
		}
		return err
	}
	return nil
}

// AddParticipant confirms a participant inside a single transaction so the
// limit check and the insert cannot interleave with a concurrent confirm.
func (r *GormSessionRepository) AddParticipant(sessionID, userID uint64, participantLimit int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.SessionParticipant{}).
			Where("session_id = ? AND user_id = ?", sessionID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateParticipant
		}

		if participantLimit > 0 {
			var count int64
			if err := tx.Model(&models.SessionParticipant{}).
				Where("session_id = ?", sessionID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(participantLimit) {
				return ErrParticipantLimitReached
			}
		}

		participant := &models.SessionParticipant{
			SessionID: sessionID,
			UserID:    userID,
		}
		if err := tx.Create(participant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateParticipant
			}
			return err
		}

		return nil
	})
}
