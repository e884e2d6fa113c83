package dto

import (
	"time"

	"github.com/pairconnect/pair-connect-api/internal/models"
)

// SessionDTO represents a session in API responses
type SessionDTO struct {
	ID               uint64        `json:"id"`
	ProjectID        uint64        `json:"project_id"`
	HostID           uint64        `json:"host_id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ScheduleTime     time.Time     `json:"schedule_date_time"`
	DurationMinutes  int           `json:"duration_minutes"`
	Stack            *models.Stack `json:"stack"`
	SessionLink      string        `json:"session_link"`
	ParticipantLimit int           `json:"participant_limit"`
	Active           bool          `json:"active"`
	Public           bool          `json:"public"`
	CreatedAt        time.Time     `json:"created_at"`
	ProjectName      string        `json:"project_name,omitempty"`
	Host             *DeveloperDTO `json:"host,omitempty"`
	Level            *LevelDTO     `json:"level"`
	Languages        []LanguageDTO `json:"languages"`
	Participants     []DeveloperDTO `json:"participants,omitempty"`
}

// SessionListDTO represents a session in list responses (minimal data)
type SessionListDTO struct {
	ID               uint64        `json:"id"`
	ProjectID        uint64        `json:"project_id"`
	HostID           uint64        `json:"host_id"`
	Name             string        `json:"name"`
	ScheduleTime     time.Time     `json:"schedule_date_time"`
	DurationMinutes  int           `json:"duration_minutes"`
	Stack            *models.Stack `json:"stack"`
	ParticipantLimit int           `json:"participant_limit"`
	Public           bool          `json:"public"`
	Level            *LevelDTO     `json:"level"`
	Languages        []LanguageDTO `json:"languages"`
}

// SuggestedSessionDTO is a session recommendation with its match priority
type SuggestedSessionDTO struct {
	SessionListDTO
	ProjectName string `json:"project_name,omitempty"`
}

// ToSessionDTO converts a Session model to SessionDTO
func ToSessionDTO(session models.Session) SessionDTO {
	dto := SessionDTO{
		ID:               session.ID,
		ProjectID:        session.ProjectID,
		HostID:           session.HostID,
		Name:             session.Name,
		Description:      session.Description,
		ScheduleTime:     session.ScheduleTime,
		DurationMinutes:  int(session.Duration.Minutes()),
		Stack:            session.Stack,
		SessionLink:      session.SessionLink,
		ParticipantLimit: session.ParticipantLimit,
		Active:           session.Active,
		Public:           session.Public,
		CreatedAt:        session.CreatedAt,
		Languages:        ToLanguageDTOs(session.Languages),
	}

	// Include project name if preloaded
	if session.Project.ID != 0 {
		dto.ProjectName = session.Project.Name
	}

	// Include host if preloaded
	if session.Host.ID != 0 {
		host := ToDeveloperDTO(session.Host)
		dto.Host = &host
	}

	// Include level if preloaded
	if session.Level != nil {
		level := ToLevelDTO(*session.Level)
		dto.Level = &level
	}

	// Include participants if preloaded
	if len(session.Participants) > 0 {
		dto.Participants = make([]DeveloperDTO, len(session.Participants))
		for i, participant := range session.Participants {
			dto.Participants[i] = ToDeveloperDTO(participant.User)
		}
	}

	return dto
}

// ToSessionListDTO converts a Session model to SessionListDTO
func ToSessionListDTO(session models.Session) SessionListDTO {
	dto := SessionListDTO{
		ID:               session.ID,
		ProjectID:        session.ProjectID,
		HostID:           session.HostID,
		Name:             session.Name,
		ScheduleTime:     session.ScheduleTime,
		DurationMinutes:  int(session.Duration.Minutes()),
		Stack:            session.Stack,
		ParticipantLimit: session.ParticipantLimit,
		Public:           session.Public,
		Languages:        ToLanguageDTOs(session.Languages),
	}

	if session.Level != nil {
		level := ToLevelDTO(*session.Level)
		dto.Level = &level
	}

	return dto
}

// ToSessionListDTOs converts a slice of Session models
func ToSessionListDTOs(sessions []models.Session) []SessionListDTO {
	dtos := make([]SessionListDTO, len(sessions))
	for i, session := range sessions {
		dtos[i] = ToSessionListDTO(session)
	}
	return dtos
}

// ToSuggestedSessionDTOs converts recommended sessions, keeping the order the
// recommendation engine produced
func ToSuggestedSessionDTOs(sessions []models.Session) []SuggestedSessionDTO {
	dtos := make([]SuggestedSessionDTO, len(sessions))
	for i, session := range sessions {
		dtos[i] = SuggestedSessionDTO{
			SessionListDTO: ToSessionListDTO(session),
		}
		if session.Project.ID != 0 {
			dtos[i].ProjectName = session.Project.Name
		}
	}
	return dtos
}
