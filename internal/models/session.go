package models

import (
	"time"
)

// Session represents a server-side login session bound to an opaque token.
type Session struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Define the relationship to User
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
