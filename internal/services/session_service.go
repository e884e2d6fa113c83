package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"gorm.io/gorm"
)

// sessionPreloads are the relations handlers need on a fully loaded session.
var sessionPreloads = []string{
	"Project", "Project.Owner", "Project.Languages", "Project.Level",
	"Host", "Level", "Languages", "Participants", "Participants.User",
}

// SessionService handles session lifecycle and participation logic
type SessionService struct {
	sessionRepo repository.SessionRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	skillRepo   repository.SkillRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo repository.SessionRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		skillRepo:   skillRepo,
	}
}

// reconcileSession enforces that a session's stack, level and languages are
// consistent with its parent project, inheriting unset fields where the
// project is unambiguous. It mutates the session and returns the language
// set to persist only when every rule passes, so a failed validation never
// partially applies.
func reconcileSession(session *models.Session, sessionLanguages []models.ProgLanguage, project *models.Project) ([]models.ProgLanguage, error) {
	// Level is always unambiguous at the project level.
	levelID := session.LevelID
	if levelID == nil {
		inherited := project.LevelID
		levelID = &inherited
	}

	stack := session.Stack
	if project.Stack != models.StackFullstack {
		if stack == nil {
			inherited := project.Stack
			stack = &inherited
		} else if *stack != project.Stack {
			return nil, newIncompatibleStackError(project.Stack)
		}
	} else {
		if stack == nil || !stack.IsValid() {
			return nil, newAmbiguousStackError()
		}
	}

	languages := sessionLanguages
	if len(languages) == 0 {
		switch len(project.Languages) {
		case 0:
			// nothing to inherit
		case 1:
			languages = []models.ProgLanguage{project.Languages[0]}
		default:
			return nil, newAmbiguousLanguageError()
		}
	} else {
		projectLanguageIDs := make(map[uint64]struct{}, len(project.Languages))
		for _, lang := range project.Languages {
			projectLanguageIDs[lang.ID] = struct{}{}
		}
		for _, lang := range languages {
			if _, ok := projectLanguageIDs[lang.ID]; !ok {
				return nil, newLanguageNotInProjectError(lang.Name)
			}
		}
	}

	session.LevelID = levelID
	session.Stack = stack
	return languages, nil
}

// CreateSessionInput represents input for creating a session
type CreateSessionInput struct {
	ProjectID        uint64
	ActorID          uint64
	Name             string
	Description      string
	ScheduleTime     time.Time
	Duration         time.Duration
	Stack            *models.Stack
	LevelID          *uint64
	LanguageIDs      []uint64
	SessionLink      string
	ParticipantLimit int
	Public           *bool
}

// CreateSession creates a session under a project after reconciling its
// stack, level and languages against the project.
func (s *SessionService) CreateSession(input CreateSessionInput) (*models.Session, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.ScheduleTime.IsZero() {
		return nil, ErrScheduleRequired
	}
	if input.Stack != nil && !input.Stack.IsValid() {
		return nil, ErrInvalidStack
	}

	project, err := s.projectRepo.FindByID(input.ProjectID, "Languages")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != input.ActorID {
		return nil, ErrNotProjectOwner
	}

	languages, err := s.resolveLanguages(input.LanguageIDs)
	if err != nil {
		return nil, err
	}

	duration := input.Duration
	if duration <= 0 {
		duration = constants.DefaultSessionDuration
	}
	public := true
	if input.Public != nil {
		public = *input.Public
	}

	session := &models.Session{
		ProjectID:        project.ID,
		HostID:           input.ActorID,
		Name:             input.Name,
		Description:      input.Description,
		ScheduleTime:     input.ScheduleTime,
		Duration:         duration,
		Stack:            input.Stack,
		LevelID:          input.LevelID,
		SessionLink:      input.SessionLink,
		ParticipantLimit: input.ParticipantLimit,
		Active:           true,
		Public:           public,
	}

	languages, err = reconcileSession(session, languages, project)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Create(session, languages); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionRepo.FindByID(session.ID, sessionPreloads...)
}

// UpdateSessionInput represents input for updating a session; nil fields are
// left untouched.
type UpdateSessionInput struct {
	Name             *string
	Description      *string
	ScheduleTime     *time.Time
	Duration         *time.Duration
	Stack            *models.Stack
	LevelID          *uint64
	LanguageIDs      *[]uint64
	SessionLink      *string
	ParticipantLimit *int
	Public           *bool
	Active           *bool
}

// UpdateSession applies a partial update and re-runs reconciliation before
// persisting, so an update can never leave the session inconsistent with
// its project.
func (s *SessionService) UpdateSession(sessionID, actorID uint64, input UpdateSessionInput) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID, "Languages")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.HostID != actorID {
		return nil, ErrNotSessionHost
	}

	project, err := s.projectRepo.FindByID(session.ProjectID, "Languages")
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		session.Name = *input.Name
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.ScheduleTime != nil {
		session.ScheduleTime = *input.ScheduleTime
	}
	if input.Duration != nil {
		session.Duration = *input.Duration
	}
	if input.Stack != nil {
		if !input.Stack.IsValid() {
			return nil, ErrInvalidStack
		}
		session.Stack = input.Stack
	}
	if input.LevelID != nil {
		session.LevelID = input.LevelID
	}
	if input.SessionLink != nil {
		session.SessionLink = *input.SessionLink
	}
	if input.ParticipantLimit != nil {
		session.ParticipantLimit = *input.ParticipantLimit
	}
	if input.Public != nil {
		session.Public = *input.Public
	}
	if input.Active != nil {
		session.Active = *input.Active
	}

	languages := session.Languages
	if input.LanguageIDs != nil {
		languages, err = s.resolveLanguages(*input.LanguageIDs)
		if err != nil {
			return nil, err
		}
	}

	languages, err = reconcileSession(session, languages, project)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Update(session, languages); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return s.sessionRepo.FindByID(session.ID, sessionPreloads...)
}

// DeleteSession deletes a session if the actor is the host
func (s *SessionService) DeleteSession(sessionID, actorID uint64) error {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to find session: %w", err)
	}

	if session.HostID != actorID {
		return ErrNotSessionHost
	}

	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// GetSession returns a session with related data
func (s *SessionService) GetSession(sessionID uint64) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID, sessionPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// ListProjectSessions returns all sessions under a project
func (s *SessionService) ListProjectSessions(projectID uint64) ([]models.Session, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return s.sessionRepo.ListByProject(projectID)
}

// ExpressInterest records that a user wants to join a session. Duplicate
// interest for the same pair is rejected; the composite key in the store
// backstops concurrent submissions.
func (s *SessionService) ExpressInterest(sessionID, userID uint64) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID, sessionPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.HostID == userID {
		return nil, ErrCannotJoinOwn
	}

	exists, err := s.sessionRepo.HasInterest(sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check interest: %w", err)
	}
	if exists {
		return nil, ErrAlreadyInterested
	}

	interest := &models.InterestedParticipant{
		SessionID: sessionID,
		UserID:    userID,
	}
	if err := s.sessionRepo.AddInterest(interest); err != nil {
		if errors.Is(err, repository.ErrDuplicateInterest) {
			return nil, ErrAlreadyInterested
		}
		return nil, fmt.Errorf("failed to record interest: %w", err)
	}

	return session, nil
}

// ConfirmParticipant adds a developer to a session's confirmed participants.
// Only the host may confirm; the limit check and insert run atomically.
func (s *SessionService) ConfirmParticipant(sessionID, actorID, developerID uint64) (*models.Session, *models.User, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.HostID != actorID {
		return nil, nil, ErrNotSessionHost
	}
	if developerID == session.HostID {
		return nil, nil, ErrCannotJoinOwn
	}

	developer, err := s.userRepo.FindByID(developerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDeveloperNotFound
		}
		return nil, nil, fmt.Errorf("failed to find developer: %w", err)
	}

	if err := s.sessionRepo.AddParticipant(sessionID, developerID, session.ParticipantLimit); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateParticipant):
			return nil, nil, ErrAlreadyParticipant
		case errors.Is(err, repository.ErrParticipantLimitReached):
			return nil, nil, ErrSessionFull
		default:
			return nil, nil, fmt.Errorf("failed to confirm participant: %w", err)
		}
	}

	session, err = s.sessionRepo.FindByID(sessionID, sessionPreloads...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload session: %w", err)
	}

	return session, developer, nil
}

// CheckInterest reports whether a user already expressed interest
func (s *SessionService) CheckInterest(sessionID, userID uint64) (bool, error) {
	return s.sessionRepo.HasInterest(sessionID, userID)
}

// CheckParticipation reports whether a user is a confirmed participant
func (s *SessionService) CheckParticipation(sessionID, userID uint64) (bool, error) {
	return s.sessionRepo.HasParticipant(sessionID, userID)
}

// ListHostedSessions returns sessions hosted by the user
func (s *SessionService) ListHostedSessions(userID uint64) ([]models.Session, error) {
	return s.sessionRepo.ListHostedBy(userID)
}

// ListInterestedSessions returns sessions the user expressed interest in
func (s *SessionService) ListInterestedSessions(userID uint64) ([]models.Session, error) {
	return s.sessionRepo.ListInterestedBy(userID)
}

// ListParticipatingSessions returns sessions the user is confirmed for
func (s *SessionService) ListParticipatingSessions(userID uint64) ([]models.Session, error) {
	return s.sessionRepo.ListParticipating(userID)
}

// resolveLanguages loads the given language ids, failing when any is unknown
func (s *SessionService) resolveLanguages(ids []uint64) ([]models.ProgLanguage, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	languages, err := s.skillRepo.FindLanguagesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve languages: %w", err)
	}
	if len(languages) != len(uniqueUint64(ids)) {
		return nil, ErrLanguageNotFound
	}

	return languages, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
