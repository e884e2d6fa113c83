package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
)

// DeveloperSuggestionService recommends developers for a session using a
// three-phase relaxation search: exact match first, then dropping the level
// constraint, then the language constraint, widening the pool only as far as
// needed to reach the quorum.
type DeveloperSuggestionService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewDeveloperSuggestionService creates a new DeveloperSuggestionService
func NewDeveloperSuggestionService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *DeveloperSuggestionService {
	return &DeveloperSuggestionService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// SuggestDevelopers returns up to constants.DeveloperSuggestionLimit distinct
// candidates for the session, phase-1 matches first. The session's host,
// confirmed participants and already-interested users are excluded from every
// phase. A session without a stack yields an empty result; a nil session is
// an error.
func (s *DeveloperSuggestionService) SuggestDevelopers(session *models.Session) ([]models.User, error) {
	if session == nil || session.ID == 0 {
		return nil, ErrInvalidSession
	}

	compatible := CompatibleStacks(session.Stack)
	if len(compatible) == 0 {
		// Unset stack is a documented edge case, not a failure: no phase can
		// match anything.
		return []models.User{}, nil
	}

	exclude, err := s.exclusionSet(session)
	if err != nil {
		return nil, err
	}

	languageIDs := make([]uint64, 0, len(session.Languages))
	for _, lang := range session.Languages {
		languageIDs = append(languageIDs, lang.ID)
	}

	quorum := constants.DeveloperSuggestionLimit
	suggested := make([]models.User, 0, quorum)

	appendPhase := func(filter repository.CandidateFilter) error {
		filter.ExcludeIDs = exclude
		filter.Limit = quorum - len(suggested)

		users, err := s.userRepo.ListCandidates(filter)
		if err != nil {
			return fmt.Errorf("failed to query candidates: %w", err)
		}

		for _, u := range users {
			suggested = append(suggested, u)
			exclude = append(exclude, u.ID)
		}
		return nil
	}

	// Phase 1: stack compatible, exact level, shared language.
	// Phase 2: drop the level constraint.
	// Sessions without languages skip straight to phase 3 because an empty
	// language set can never overlap.
	if len(languageIDs) > 0 {
		if err := appendPhase(repository.CandidateFilter{
			Stacks:      compatible,
			LevelID:     session.LevelID,
			LanguageIDs: languageIDs,
		}); err != nil {
			return nil, err
		}

		if len(suggested) < quorum && session.LevelID != nil {
			if err := appendPhase(repository.CandidateFilter{
				Stacks:      compatible,
				LanguageIDs: languageIDs,
			}); err != nil {
				return nil, err
			}
		}
	}

	// Phase 3: stack constraint only. Fewer than the quorum is a valid
	// outcome, including none at all.
	if len(suggested) < quorum {
		if err := appendPhase(repository.CandidateFilter{Stacks: compatible}); err != nil {
			return nil, err
		}
	}

	return suggested, nil
}

func (s *DeveloperSuggestionService) exclusionSet(session *models.Session) ([]uint64, error) {
	interested, err := s.sessionRepo.InterestedUserIDs(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interested users: %w", err)
	}
	participants, err := s.sessionRepo.ParticipantUserIDs(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	exclude := make([]uint64, 0, len(interested)+len(participants)+1)
	exclude = append(exclude, session.HostID)
	exclude = append(exclude, interested...)
	exclude = append(exclude, participants...)
	return uniqueUint64(exclude), nil
}

// SessionSuggestionService recommends sessions to a user. Unlike the
// developer search this is a single pass: a hard language gate, then a
// priority annotation over stack and level, then a stable sort.
type SessionSuggestionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionSuggestionService creates a new SessionSuggestionService
func NewSessionSuggestionService(sessionRepo repository.SessionRepository) *SessionSuggestionService {
	return &SessionSuggestionService{sessionRepo: sessionRepo}
}

// SuggestSessions returns up to constants.SessionSuggestionLimit future
// sessions for the user, best matches and soonest first. A user with no
// declared languages gets an empty result: no language signal means no
// recommendation. The current time is an explicit argument so results are
// reproducible in tests.
func (s *SessionSuggestionService) SuggestSessions(user *models.User, now time.Time) ([]models.Session, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrInvalidUser
	}

	if len(user.Languages) == 0 {
		return []models.Session{}, nil
	}

	languageIDs := make([]uint64, 0, len(user.Languages))
	for _, lang := range user.Languages {
		languageIDs = append(languageIDs, lang.ID)
	}

	sessions, err := s.sessionRepo.ListUpcoming(repository.SessionSuggestionFilter{
		ExcludeHostID: user.ID,
		From:          now,
		LanguageIDs:   languageIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}

	compatible := make(map[models.Stack]struct{})
	for _, stack := range CompatibleStacks(user.Stack) {
		compatible[stack] = struct{}{}
	}

	// Priority 1: level match and compatible stack. Priority 2: compatible
	// stack only. Priority 3: language overlap only. Every session that
	// survived the language gate lands in one of the three buckets.
	priorities := make(map[uint64]int, len(sessions))
	for _, session := range sessions {
		priority := 3
		if session.Stack != nil {
			if _, ok := compatible[*session.Stack]; ok {
				priority = 2
				if session.LevelID != nil && user.LevelID != nil && *session.LevelID == *user.LevelID {
					priority = 1
				}
			}
		}
		priorities[session.ID] = priority
	}

	// The repository already orders by (schedule, id); the stable sort layers
	// priority on top without disturbing that tie-break.
	sort.SliceStable(sessions, func(i, j int) bool {
		return priorities[sessions[i].ID] < priorities[sessions[j].ID]
	})

	if len(sessions) > constants.SessionSuggestionLimit {
		sessions = sessions[:constants.SessionSuggestionLimit]
	}

	return sessions, nil
}
