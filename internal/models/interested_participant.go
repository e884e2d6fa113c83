package models

import "time"

// InterestedParticipant records that a user expressed interest in a session.
// The composite primary key is the store-level guarantee that interest is
// recorded at most once per (session, user) pair, even under concurrent
// requests.
type InterestedParticipant struct {
	SessionID uint64    `gorm:"primarykey" json:"session_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"date_created_interested"`

	// Relations
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
