package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/database"
	"github.com/pairconnect/pair-connect-api/internal/models"
)

// RequireProjectAccess loads the project from the URL parameter. Any
// authenticated user may view a project; ownership checks happen in the
// services for mutating operations.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid project ID",
			})
			c.Abort()
			return
		}

		if _, exists := GetUserID(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().
			Preload("Owner").
			Preload("Level").
			Preload("Languages").
			First(&project, projectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	projectInterface, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}

	project, ok := projectInterface.(models.Project)
	return project, ok
}
