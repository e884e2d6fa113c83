package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/database"
	"github.com/pairconnect/pair-connect-api/internal/models"
)

// RequireSessionAccess loads the session from the URL parameter and checks
// the user may see it. Private sessions are visible to the host, confirmed
// participants and interested users only.
func RequireSessionAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionIDStr := c.Param("id")
		sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid session ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var session models.Session
		if err := database.GetDB().
			Preload("Project").
			Preload("Project.Owner").
			Preload("Project.Languages").
			Preload("Project.Level").
			Preload("Host").
			Preload("Level").
			Preload("Languages").
			Preload("Participants").
			Preload("Participants.User").
			First(&session, sessionID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Session not found",
			})
			c.Abort()
			return
		}

		if !session.Public && session.HostID != userID {
			allowed := false
			for _, participant := range session.Participants {
				if participant.UserID == userID {
					allowed = true
					break
				}
			}
			if !allowed {
				var interest models.InterestedParticipant
				allowed = database.GetDB().
					Where("session_id = ? AND user_id = ?", sessionID, userID).
					First(&interest).Error == nil
			}
			if !allowed {
				// Return 404 instead of 403 to avoid leaking session existence
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Session not found",
				})
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}

// GetSession retrieves the session loaded by RequireSessionAccess
func GetSession(c *gin.Context) (models.Session, bool) {
	sessionInterface, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return models.Session{}, false
	}

	session, ok := sessionInterface.(models.Session)
	return session, ok
}
