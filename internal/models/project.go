package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	OwnerID     uint64         `gorm:"not null" json:"owner_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"type:varchar(255)" json:"image_url"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	Stack       Stack          `gorm:"type:varchar(20);not null" json:"stack"`
	LevelID     uint64         `gorm:"not null" json:"level_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner     User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Level     Level          `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Languages []ProgLanguage `gorm:"many2many:project_languages" json:"languages,omitempty"`
	Sessions  []Session      `gorm:"foreignKey:ProjectID" json:"sessions,omitempty"`
}
