package dto

import (
	"github.com/pairconnect/pair-connect-api/internal/models"
)

// LevelDTO represents a skill level in API responses
type LevelDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// LanguageDTO represents a programming language in API responses
type LanguageDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DeveloperDTO is the public view of a user. Contact details are deliberately
// absent: they are only exchanged once the host confirms a participant.
type DeveloperDTO struct {
	ID        uint64        `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	AboutMe   string        `json:"about_me"`
	PhotoURL  string        `json:"photo_url"`
	Stack     *models.Stack `json:"stack"`
	Level     *LevelDTO     `json:"level"`
	Languages []LanguageDTO `json:"languages"`
}

// PrivateUserDTO is the owner's view of their own account, including contact
// details.
type PrivateUserDTO struct {
	ID           uint64        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	AboutMe      string        `json:"about_me"`
	Telephone    string        `json:"telephone"`
	PhotoURL     string        `json:"photo_url"`
	LinkedinLink string        `json:"linkedin_link"`
	GithubLink   string        `json:"github_link"`
	DiscordLink  string        `json:"discord_link"`
	Stack        *models.Stack `json:"stack"`
	Level        *LevelDTO     `json:"level"`
	Languages    []LanguageDTO `json:"languages"`
}

// ToLevelDTO converts a Level model to LevelDTO
func ToLevelDTO(level models.Level) LevelDTO {
	return LevelDTO{
		ID:   level.ID,
		Name: level.Name,
	}
}

// ToLanguageDTOs converts a slice of ProgLanguage models to LanguageDTOs
func ToLanguageDTOs(languages []models.ProgLanguage) []LanguageDTO {
	dtos := make([]LanguageDTO, len(languages))
	for i, lang := range languages {
		dtos[i] = LanguageDTO{
			ID:   lang.ID,
			Name: lang.Name,
		}
	}
	return dtos
}

// ToDeveloperDTO converts a User model to its public representation
func ToDeveloperDTO(user models.User) DeveloperDTO {
	dto := DeveloperDTO{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		AboutMe:   user.AboutMe,
		PhotoURL:  user.PhotoURL,
		Stack:     user.Stack,
		Languages: ToLanguageDTOs(user.Languages),
	}

	// Include level if preloaded
	if user.Level != nil {
		level := ToLevelDTO(*user.Level)
		dto.Level = &level
	}

	return dto
}

// ToDeveloperDTOs converts a slice of User models to DeveloperDTOs
func ToDeveloperDTOs(users []models.User) []DeveloperDTO {
	dtos := make([]DeveloperDTO, len(users))
	for i, user := range users {
		dtos[i] = ToDeveloperDTO(user)
	}
	return dtos
}

// ToPrivateUserDTO converts a User model to the owner's own representation
func ToPrivateUserDTO(user models.User) PrivateUserDTO {
	dto := PrivateUserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		AboutMe:      user.AboutMe,
		Telephone:    user.Telephone,
		PhotoURL:     user.PhotoURL,
		LinkedinLink: user.LinkedinLink,
		GithubLink:   user.GithubLink,
		DiscordLink:  user.DiscordLink,
		Stack:        user.Stack,
		Languages:    ToLanguageDTOs(user.Languages),
	}

	if user.Level != nil {
		level := ToLevelDTO(*user.Level)
		dto.Level = &level
	}

	return dto
}
