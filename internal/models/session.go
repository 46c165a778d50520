package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a server-side session row keyed by the cookie-carried session id.
// Data holds the JSON session payload (currently just the user id) so the
// table stays compatible with generic session-store tooling.
type Session struct {
	SID       string         `json:"sid" gorm:"primaryKey;size:64;column:sid"`
	UserID    string         `json:"userId" gorm:"index;not null;size:36"`
	Data      datatypes.JSON `json:"data"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"index;not null"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Session) TableName() string {
	return "user_sessions"
}

// Expired reports whether the session is past its deadline.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
