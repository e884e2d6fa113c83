package repository

import (
	"time"

	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/utils"
)

// CandidateFilter is a single query specification for the developer
// suggestion search. Each relaxation phase builds one of these; executing
// them in sequence with early exit avoids fetching candidates the quorum
// never needed.
type CandidateFilter struct {
	// Stacks restricts candidates to these stack values. Empty matches nobody.
	Stacks []models.Stack

	// LevelID, when set, requires an exact level match.
	LevelID *uint64

	// LanguageIDs, when non-empty, requires at least one shared language.
	LanguageIDs []uint64

	// ExcludeIDs removes specific users from the result.
	ExcludeIDs []uint64

	Limit int
}

// SessionSuggestionFilter selects the base set of sessions eligible for
// recommendation to a user.
type SessionSuggestionFilter struct {
	ExcludeHostID uint64
	From          time.Time

	// LanguageIDs is a hard gate: sessions must share at least one language.
	// Empty matches nothing.
	LanguageIDs []uint64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// UpdateProfile saves profile fields and, when languages is non-nil,
	// replaces the user's declared languages in the same transaction
	UpdateProfile(user *models.User, languages []models.ProgLanguage) error

	// ListCandidates returns non-staff users with a declared stack and at
	// least one declared language, matching the filter, ordered by id
	ListCandidates(filter CandidateFilter) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project together with its language set
	Create(project *models.Project, languages []models.ProgLanguage) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns a page of active projects, newest first
	List(params utils.PaginationParams) ([]models.Project, int64, error)

	// ListByOwner returns all projects owned by a user
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// Update saves project fields and, when languages is non-nil, replaces
	// the project's language set in the same transaction
	Update(project *models.Project, languages []models.ProgLanguage) error

	// Delete removes a project and all of its sessions
	Delete(id uint64) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a session together with its language set
	Create(session *models.Session, languages []models.ProgLanguage) error

	// FindByID finds a session by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Session, error)

	// ListByProject returns all sessions of a project ordered by schedule
	ListByProject(projectID uint64) ([]models.Session, error)

	// ListUpcoming returns suggestion candidates ordered by schedule then id
	ListUpcoming(filter SessionSuggestionFilter) ([]models.Session, error)

	// ListHostedBy returns sessions hosted by a user
	ListHostedBy(userID uint64) ([]models.Session, error)

	// ListInterestedBy returns sessions a user expressed interest in
	ListInterestedBy(userID uint64) ([]models.Session, error)

	// ListParticipating returns sessions a user is confirmed for
	ListParticipating(userID uint64) ([]models.Session, error)

	// Update saves session fields and, when languages is non-nil, replaces
	// the session's language set in the same transaction
	Update(session *models.Session, languages []models.ProgLanguage) error

	// Delete removes a session with its interest and participant records
	Delete(id uint64) error

	// InterestedUserIDs returns ids of users interested in a session
	InterestedUserIDs(sessionID uint64) ([]uint64, error)

	// ParticipantUserIDs returns ids of confirmed participants
	ParticipantUserIDs(sessionID uint64) ([]uint64, error)

	// HasInterest reports whether a user already expressed interest
	HasInterest(sessionID, userID uint64) (bool, error)

	// HasParticipant reports whether a user is a confirmed participant
	HasParticipant(sessionID, userID uint64) (bool, error)

	// AddInterest records interest; duplicates fail with ErrDuplicateInterest
	AddInterest(interest *models.InterestedParticipant) error

	// AddParticipant confirms a participant, enforcing the limit atomically
	AddParticipant(sessionID, userID uint64, participantLimit int) error
}

// SkillRepository defines the interface for the level/language lookup tables
type SkillRepository interface {
	// ListLevels returns all skill levels
	ListLevels() ([]models.Level, error)

	// FindLevelByID finds a level by ID
	FindLevelByID(id uint64) (*models.Level, error)

	// ListLanguages returns all programming languages
	ListLanguages() ([]models.ProgLanguage, error)

	// FindLanguagesByIDs returns the languages matching the given ids
	FindLanguagesByIDs(ids []uint64) ([]models.ProgLanguage, error)
}
