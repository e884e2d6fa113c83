package models

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	ProjectID        uint64         `gorm:"not null" json:"project_id"`
	HostID           uint64         `gorm:"not null" json:"host_id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	ScheduleTime     time.Time      `gorm:"not null" json:"schedule_date_time"`
	Duration         time.Duration  `gorm:"not null" json:"duration"`
	Stack            *Stack         `gorm:"type:varchar(20)" json:"stack"`
	LevelID          *uint64        `json:"level_id"`
	SessionLink      string         `gorm:"type:varchar(255)" json:"session_link"`
	ParticipantLimit int            `gorm:"not null;default:0" json:"participant_limit"` // 0 = unlimited
	Active           bool           `gorm:"not null;default:true" json:"active"`
	Public           bool           `gorm:"not null;default:true" json:"public"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project      Project                 `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Host         User                    `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Level        *Level                  `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Languages    []ProgLanguage          `gorm:"many2many:session_languages" json:"languages,omitempty"`
	Participants []SessionParticipant    `gorm:"foreignKey:SessionID" json:"participants,omitempty"`
	Interested   []InterestedParticipant `gorm:"foreignKey:SessionID" json:"-"`
}

// SessionParticipant records a confirmed participant of a session.
type SessionParticipant struct {
	SessionID uint64    `gorm:"primarykey" json:"session_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
