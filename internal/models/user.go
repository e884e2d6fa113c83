package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Name         string         `gorm:"type:varchar(255)" json:"name"`
	AboutMe      string         `gorm:"type:text" json:"about_me"`
	Telephone    string         `gorm:"type:varchar(20)" json:"telephone"`
	PhotoURL     string         `gorm:"type:varchar(255)" json:"photo_url"`
	LinkedinLink string         `gorm:"type:varchar(255)" json:"linkedin_link"`
	GithubLink   string         `gorm:"type:varchar(255)" json:"github_link"`
	DiscordLink  string         `gorm:"type:varchar(255)" json:"discord_link"`
	IsStaff      bool           `gorm:"not null;default:false" json:"-"`
	Stack        *Stack         `gorm:"type:varchar(20)" json:"stack"`
	LevelID      *uint64        `json:"level_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Level          *Level                  `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Languages      []ProgLanguage          `gorm:"many2many:user_languages" json:"languages,omitempty"`
	HostedSessions []Session               `gorm:"foreignKey:HostID" json:"-"`
	Participations []SessionParticipant    `gorm:"foreignKey:UserID" json:"-"`
	Interests      []InterestedParticipant `gorm:"foreignKey:UserID" json:"-"`
}
