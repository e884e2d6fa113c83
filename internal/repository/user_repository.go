package repository

import (
	"github.com/pairconnect/pair-connect-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile saves profile fields and optionally replaces the language set
func (r *GormUserRepository) UpdateProfile(user *models.User, languages []models.ProgLanguage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if languages != nil {
			if err := tx.Model(user).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		return nil
	})
}

// ListCandidates returns suggestion candidates matching a single phase filter.
// Every phase requires a non-staff user with a declared stack and at least
// one declared language; ordering by id keeps results deterministic.
func (r *GormUserRepository) ListCandidates(filter CandidateFilter) ([]models.User, error) {
	if len(filter.Stacks) == 0 {
		return []models.User{}, nil
	}

	query := r.db.Model(&models.User{}).
		Where("users.is_staff = ?", false).
		Where("users.stack IS NOT NULL").
		Where("users.stack IN ?", filter.Stacks).
		Where("EXISTS (SELECT 1 FROM user_languages WHERE user_languages.user_id = users.id)")

	if filter.LevelID != nil {
		query = query.Where("users.level_id = ?", *filter.LevelID)
	}
	if len(filter.LanguageIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM user_languages WHERE user_languages.user_id = users.id AND user_languages.prog_language_id IN ?)",
			filter.LanguageIDs,
		)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("users.id NOT IN ?", filter.ExcludeIDs)
	}

	query = query.Order("users.id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var users []models.User
	if err := query.Preload("Level").Preload("Languages").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
