package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentProgress is the completion state of one video for one user. The
// composite unique index makes the upsert race-free: concurrent toggles for
// the same (user, video) pair collapse onto a single row.
type StudentProgress struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	UserID      string     `json:"userId" gorm:"uniqueIndex:idx_progress_user_video;not null;size:36"`
	VideoID     string     `json:"videoId" gorm:"uniqueIndex:idx_progress_user_video;not null;size:36"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Profile is populated on admin-wide views only.
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

func (sp *StudentProgress) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	return nil
}
