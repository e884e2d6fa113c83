package services

import (
	"errors"
	"fmt"

	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"github.com/pairconnect/pair-connect-api/internal/utils"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	skillRepo   repository.SkillRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, skillRepo repository.SkillRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	OwnerID     uint64
	Name        string
	Description string
	ImageURL    string
	Stack       models.Stack
	LevelID     uint64
	LanguageIDs []uint64
}

// CreateProject creates a project. Stack and level are fixed at creation and
// the language set must be non-empty.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !input.Stack.IsValid() {
		return nil, ErrInvalidStack
	}
	if len(input.LanguageIDs) == 0 {
		return nil, ErrAtLeastOneLanguage
	}

	if _, err := s.skillRepo.FindLevelByID(input.LevelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to check level: %w", err)
	}

	languages, err := s.skillRepo.FindLanguagesByIDs(input.LanguageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve languages: %w", err)
	}
	if len(languages) != len(uniqueUint64(input.LanguageIDs)) {
		return nil, ErrLanguageNotFound
	}

	project := &models.Project{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      true,
		Stack:       input.Stack,
		LevelID:     input.LevelID,
	}

	if err := s.projectRepo.Create(project, languages); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Owner", "Level", "Languages")
}

// GetProject returns a project with related data
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID,
		"Owner", "Level", "Languages", "Sessions", "Sessions.Languages", "Sessions.Level")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns a page of active projects
func (s *ProjectService) ListProjects(params utils.PaginationParams) ([]models.Project, int64, error) {
	return s.projectRepo.List(params)
}

// ListOwnProjects returns all projects owned by a user
func (s *ProjectService) ListOwnProjects(ownerID uint64) ([]models.Project, error) {
	return s.projectRepo.ListByOwner(ownerID)
}

// UpdateProjectInput represents a partial project update; nil fields are
// left untouched. Stack and level are intentionally absent: they are fixed
// at creation because existing sessions were validated against them.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Active      *bool
	LanguageIDs *[]uint64
}

// UpdateProject updates a project if the actor is the owner
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != actorID {
		return nil, ErrNotProjectOwner
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.ImageURL != nil {
		project.ImageURL = *input.ImageURL
	}
	if input.Active != nil {
		project.Active = *input.Active
	}

	var languages []models.ProgLanguage
	if input.LanguageIDs != nil {
		if len(*input.LanguageIDs) == 0 {
			return nil, ErrAtLeastOneLanguage
		}
		languages, err = s.skillRepo.FindLanguagesByIDs(*input.LanguageIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve languages: %w", err)
		}
		if len(languages) != len(uniqueUint64(*input.LanguageIDs)) {
			return nil, ErrLanguageNotFound
		}
	}

	if err := s.projectRepo.Update(project, languages); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(projectID, "Owner", "Level", "Languages")
}

// DeleteProject deletes a project and its sessions if the actor is the owner
func (s *ProjectService) DeleteProject(projectID, actorID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != actorID {
		return ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
