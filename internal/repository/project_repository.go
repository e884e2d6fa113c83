package repository

import (
	"github.com/pairconnect/pair-connect-api/internal/database"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project together with its language set
func (r *GormProjectRepository) Create(project *models.Project, languages []models.ProgLanguage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		if len(languages) > 0 {
			if err := tx.Model(project).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns a page of active projects, newest first
func (r *GormProjectRepository) List(params utils.PaginationParams) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Where("projects.active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.
		Order("projects.created_at DESC, projects.id DESC").
		Scopes(database.Paginate(params)).
		Preload("Owner").
		Preload("Level").
		Preload("Languages").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListByOwner returns all projects owned by a user
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("projects.id ASC").
		Preload("Level").
		Preload("Languages").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves project fields and optionally replaces the language set
func (r *GormProjectRepository) Update(project *models.Project, languages []models.ProgLanguage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}

		if languages != nil {
			if err := tx.Model(project).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a project and all of its sessions
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sessionIDs []uint64
		if err := tx.Model(&models.Session{}).
			Where("project_id = ?", id).
			Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}

		if len(sessionIDs) > 0 {
			if err := tx.Where("session_id IN ?", sessionIDs).
				Delete(&models.InterestedParticipant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("session_id IN ?", sessionIDs).
				Delete(&models.SessionParticipant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).
				Delete(&models.Session{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
