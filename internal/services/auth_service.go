package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pairconnect/pair-connect-api/internal/constants"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/pairconnect/pair-connect-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and profile business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, skillRepo repository.SkillRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Name     string
	Password string
}

// Signup creates a new user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user with their matching profile.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Level", "Languages")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput represents a partial profile update; nil fields are
// left untouched.
type UpdateProfileInput struct {
	Name         *string
	AboutMe      *string
	Telephone    *string
	PhotoURL     *string
	LinkedinLink *string
	GithubLink   *string
	DiscordLink  *string
	Stack        *models.Stack
	LevelID      *uint64
	LanguageIDs  *[]uint64
}

// UpdateProfile updates the user's profile, including the matching
// attributes (stack, level, languages) the suggestion engines depend on.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AboutMe != nil {
		user.AboutMe = *input.AboutMe
	}
	if input.Telephone != nil {
		user.Telephone = *input.Telephone
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}
	if input.LinkedinLink != nil {
		user.LinkedinLink = *input.LinkedinLink
	}
	if input.GithubLink != nil {
		user.GithubLink = *input.GithubLink
	}
	if input.DiscordLink != nil {
		user.DiscordLink = *input.DiscordLink
	}
	if input.Stack != nil {
		if !input.Stack.IsValid() {
			return nil, ErrInvalidStack
		}
		user.Stack = input.Stack
	}
	if input.LevelID != nil {
		if _, err := s.skillRepo.FindLevelByID(*input.LevelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLevelNotFound
			}
			return nil, fmt.Errorf("failed to check level: %w", err)
		}
		user.LevelID = input.LevelID
	}

	var languages []models.ProgLanguage
	if input.LanguageIDs != nil {
		languages, err = s.skillRepo.FindLanguagesByIDs(*input.LanguageIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve languages: %w", err)
		}
		if len(languages) != len(uniqueUint64(*input.LanguageIDs)) {
			return nil, ErrLanguageNotFound
		}
	}

	if err := s.userRepo.UpdateProfile(user, languages); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetUser(userID)
}
