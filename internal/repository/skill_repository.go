package repository

import (
	"github.com/pairconnect/pair-connect-api/internal/models"
	"gorm.io/gorm"
)

// GormSkillRepository is a GORM implementation of SkillRepository
type GormSkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &GormSkillRepository{db: db}
}

// ListLevels returns all skill levels
func (r *GormSkillRepository) ListLevels() ([]models.Level, error) {
	var levels []models.Level
	if err := r.db.Order("id ASC").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindLevelByID finds a level by ID
func (r *GormSkillRepository) FindLevelByID(id uint64) (*models.Level, error) {
	var level models.Level
	if err := r.db.First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// ListLanguages returns all programming languages
func (r *GormSkillRepository) ListLanguages() ([]models.ProgLanguage, error) {
	var languages []models.ProgLanguage
	if err := r.db.Order("id ASC").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

// FindLanguagesByIDs returns the languages matching the given ids
func (r *GormSkillRepository) FindLanguagesByIDs(ids []uint64) ([]models.ProgLanguage, error) {
	if len(ids) == 0 {
		return []models.ProgLanguage{}, nil
	}

	var languages []models.ProgLanguage
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}
