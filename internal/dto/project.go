package dto

import (
	"time"

	"github.com/pairconnect/pair-connect-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Active      bool             `json:"active"`
	Stack       models.Stack     `json:"stack"`
	OwnerID     uint64           `json:"owner_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Owner       *DeveloperDTO    `json:"owner,omitempty"`
	Level       *LevelDTO        `json:"level,omitempty"`
	Languages   []LanguageDTO    `json:"languages"`
	Sessions    []SessionListDTO `json:"sessions,omitempty"`
}

// ProjectListItemDTO represents a project in list responses (minimal data)
type ProjectListItemDTO struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	ImageURL  string        `json:"image_url"`
	Stack     models.Stack  `json:"stack"`
	OwnerID   uint64        `json:"owner_id"`
	Level     *LevelDTO     `json:"level,omitempty"`
	Languages []LanguageDTO `json:"languages"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		ImageURL:    project.ImageURL,
		Active:      project.Active,
		Stack:       project.Stack,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Languages:   ToLanguageDTOs(project.Languages),
	}

	// Include owner if preloaded
	if project.Owner.ID != 0 {
		owner := ToDeveloperDTO(project.Owner)
		dto.Owner = &owner
	}

	// Include level if preloaded
	if project.Level.ID != 0 {
		level := ToLevelDTO(project.Level)
		dto.Level = &level
	}

	// Include sessions if preloaded
	if len(project.Sessions) > 0 {
		dto.Sessions = make([]SessionListDTO, len(project.Sessions))
		for i, session := range project.Sessions {
			dto.Sessions[i] = ToSessionListDTO(session)
		}
	}

	return dto
}

// ToProjectListItemDTO converts a Project model to ProjectListItemDTO
func ToProjectListItemDTO(project models.Project) ProjectListItemDTO {
	dto := ProjectListItemDTO{
		ID:        project.ID,
		Name:      project.Name,
		ImageURL:  project.ImageURL,
		Stack:     project.Stack,
		OwnerID:   project.OwnerID,
		Languages: ToLanguageDTOs(project.Languages),
		CreatedAt: project.CreatedAt,
	}

	if project.Level.ID != 0 {
		level := ToLevelDTO(project.Level)
		dto.Level = &level
	}

	return dto
}

// ToProjectListItemDTOs converts a slice of Project models
func ToProjectListItemDTOs(projects []models.Project) []ProjectListItemDTO {
	dtos := make([]ProjectListItemDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectListItemDTO(project)
	}
	return dtos
}
