package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pairconnect/pair-connect-api/internal/errors"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
)

// SkillsHandler serves the level, language and stack lookup tables.
type SkillsHandler struct {
	skillRepo repository.SkillRepository
}

// NewSkillsHandler creates a new SkillsHandler.
func NewSkillsHandler(skillRepo repository.SkillRepository) *SkillsHandler {
	return &SkillsHandler{
		skillRepo: skillRepo,
	}
}

// ListLevels returns all skill levels
func (h *SkillsHandler) ListLevels(c *gin.Context) {
	levels, err := h.skillRepo.ListLevels()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch levels")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"levels": levels,
	})
}

// ListLanguages returns all programming languages
func (h *SkillsHandler) ListLanguages(c *gin.Context) {
	languages, err := h.skillRepo.ListLanguages()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch languages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"languages": languages,
	})
}

// ListStacks returns the fixed stack values
func (h *SkillsHandler) ListStacks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stacks": models.Stacks,
	})
}
