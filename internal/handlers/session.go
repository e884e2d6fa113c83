package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pairconnect/pair-connect-api/internal/dto"
	apierrors "github.com/pairconnect/pair-connect-api/internal/errors"
	"github.com/pairconnect/pair-connect-api/internal/middleware"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/services"
)

// SessionHandler coordinates session lifecycle, matching and participation
// HTTP handlers.
type SessionHandler struct {
	sessionService       *services.SessionService
	developerSuggestions *services.DeveloperSuggestionService
	sessionSuggestions   *services.SessionSuggestionService
	notificationService  *services.NotificationService
	authService          *services.AuthService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	sessionService *services.SessionService,
	developerSuggestions *services.DeveloperSuggestionService,
	sessionSuggestions *services.SessionSuggestionService,
	notificationService *services.NotificationService,
	authService *services.AuthService,
) *SessionHandler {
	return &SessionHandler{
		sessionService:       sessionService,
		developerSuggestions: developerSuggestions,
		sessionSuggestions:   sessionSuggestions,
		notificationService:  notificationService,
		authService:          authService,
	}
}

// CreateSession creates a session under one of the user's projects
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateSessionRequest struct {
		ProjectID        uint64        `json:"project_id" binding:"required"`
		Name             string        `json:"name" binding:"required"`
		Description      string        `json:"description"`
		ScheduleTime     time.Time     `json:"schedule_date_time" binding:"required"`
		DurationMinutes  int           `json:"duration_minutes"`
		Stack            *models.Stack `json:"stack"`
		LevelID          *uint64       `json:"level_id"`
		LanguageIDs      []uint64      `json:"language_ids"`
		SessionLink      string        `json:"session_link"`
		ParticipantLimit int           `json:"participant_limit"`
		Public           *bool         `json:"public"`
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.CreateSession(services.CreateSessionInput{
		ProjectID:        req.ProjectID,
		ActorID:          userID,
		Name:             req.Name,
		Description:      req.Description,
		ScheduleTime:     req.ScheduleTime,
		Duration:         time.Duration(req.DurationMinutes) * time.Minute,
		Stack:            req.Stack,
		LevelID:          req.LevelID,
		LanguageIDs:      req.LanguageIDs,
		SessionLink:      req.SessionLink,
		ParticipantLimit: req.ParticipantLimit,
		Public:           req.Public,
	})
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionDTO(*session))
}

// GetSession returns a session with related data
// Session is already loaded with relations by RequireSessionAccess middleware
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDTO(session))
}

// UpdateSession applies a partial, host-only update to a session
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	type UpdateSessionRequest struct {
		Name             *string       `json:"name"`
		Description      *string       `json:"description"`
		ScheduleTime     *time.Time    `json:"schedule_date_time"`
		DurationMinutes  *int          `json:"duration_minutes"`
		Stack            *models.Stack `json:"stack"`
		LevelID          *uint64       `json:"level_id"`
		LanguageIDs      *[]uint64     `json:"language_ids"`
		SessionLink      *string       `json:"session_link"`
		ParticipantLimit *int          `json:"participant_limit"`
		Public           *bool         `json:"public"`
		Active           *bool         `json:"active"`
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateSessionInput{
		Name:             req.Name,
		Description:      req.Description,
		ScheduleTime:     req.ScheduleTime,
		Stack:            req.Stack,
		LevelID:          req.LevelID,
		LanguageIDs:      req.LanguageIDs,
		SessionLink:      req.SessionLink,
		ParticipantLimit: req.ParticipantLimit,
		Public:           req.Public,
		Active:           req.Active,
	}
	if req.DurationMinutes != nil {
		duration := time.Duration(*req.DurationMinutes) * time.Minute
		input.Duration = &duration
	}

	updated, err := h.sessionService.UpdateSession(session.ID, userID, input)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDTO(*updated))
}

// DeleteSession deletes a session if the user is the host
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	if err := h.sessionService.DeleteSession(session.ID, userID); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session deleted successfully",
	})
}

// ListProjectSessions returns all sessions under a project
func (h *SessionHandler) ListProjectSessions(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	sessions, err := h.sessionService.ListProjectSessions(project.ID)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": dto.ToSessionListDTOs(sessions),
	})
}

// SuggestedDevelopers returns candidate developers for a session
func (h *SessionHandler) SuggestedDevelopers(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	developers, err := h.developerSuggestions.SuggestDevelopers(&session)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_developers": dto.ToDeveloperDTOs(developers),
	})
}

// SuggestedSessions returns session recommendations for the current user
func (h *SessionHandler) SuggestedSessions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	sessions, err := h.sessionSuggestions.SuggestSessions(user, time.Now())
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_sessions": dto.ToSuggestedSessionDTOs(sessions),
	})
}

// InviteDeveloper emails a suggested developer an invitation to the session.
// Only the host can invite.
func (h *SessionHandler) InviteDeveloper(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	if session.HostID != userID {
		apierrors.Forbidden(c, services.ErrNotSessionHost.Error())
		return
	}

	developerID, ok := parseIDParam(c, "developer_id")
	if !ok {
		return
	}

	developer, err := h.authService.GetUser(developerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, services.ErrDeveloperNotFound.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load developer")
		return
	}

	if err := h.notificationService.SendSessionInvite(&session, developer); err != nil {
		// The invite has no persistent state; a failed email is only logged.
		log.Printf("invite notification for session %d: %v", session.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation sent",
	})
}

// ExpressInterest records that the current user wants to join the session
func (h *SessionHandler) ExpressInterest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	updated, err := h.sessionService.ExpressInterest(session.ID, userID)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err == nil {
		if err := h.notificationService.SendInterestNotification(updated, user); err != nil {
			// Interest is committed; the host email is best-effort.
			log.Printf("interest notification for session %d: %v", session.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Interest registered",
	})
}

// ConfirmParticipant adds a developer to the session's confirmed participants.
// Only the host can confirm.
func (h *SessionHandler) ConfirmParticipant(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	type ConfirmParticipantRequest struct {
		DeveloperID uint64 `json:"developer_id" binding:"required"`
	}

	var req ConfirmParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, developer, err := h.sessionService.ConfirmParticipant(session.ID, userID, req.DeveloperID)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	if err := h.notificationService.SendParticipantConfirmation(updated, developer); err != nil {
		// The participant row is committed; the email is best-effort.
		log.Printf("confirmation notification for session %d: %v", session.ID, err)
	}

	c.JSON(http.StatusOK, dto.ToSessionDTO(*updated))
}

// CheckInterest reports whether the current user expressed interest
func (h *SessionHandler) CheckInterest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	interested, err := h.sessionService.CheckInterest(session.ID, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to check interest")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interested": interested,
	})
}

// CheckParticipation reports whether the current user is a confirmed participant
func (h *SessionHandler) CheckParticipation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		apierrors.InternalError(c, "Session not found in context")
		return
	}

	participating, err := h.sessionService.CheckParticipation(session.ID, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to check participation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participating": participating,
	})
}

// ListHostedSessions returns sessions hosted by the current user
func (h *SessionHandler) ListHostedSessions(c *gin.Context) {
	h.listUserSessions(c, h.sessionService.ListHostedSessions)
}

// ListInterestedSessions returns sessions the current user is interested in
func (h *SessionHandler) ListInterestedSessions(c *gin.Context) {
	h.listUserSessions(c, h.sessionService.ListInterestedSessions)
}

// ListParticipatingSessions returns sessions the current user is confirmed for
func (h *SessionHandler) ListParticipatingSessions(c *gin.Context) {
	h.listUserSessions(c, h.sessionService.ListParticipatingSessions)
}

func (h *SessionHandler) listUserSessions(c *gin.Context, list func(uint64) ([]models.Session, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessions, err := list(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": dto.ToSessionListDTOs(sessions),
	})
}

func respondSessionError(c *gin.Context, err error) {
	if verr, ok := services.AsValidationError(err); ok {
		apierrors.BadRequestWithCode(c, string(verr.Kind), verr.Message)
		return
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrDeveloperNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrNotSessionHost):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyInterested),
		errors.Is(err, services.ErrAlreadyParticipant):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSessionFull):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrScheduleRequired),
		errors.Is(err, services.ErrInvalidStack),
		errors.Is(err, services.ErrLanguageNotFound),
		errors.Is(err, services.ErrCannotJoinOwn),
		errors.Is(err, services.ErrInvalidSession),
		errors.Is(err, services.ErrInvalidUser):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
