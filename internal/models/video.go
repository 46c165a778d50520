package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is one catalog entry. Folder is a free-text grouping key, not a
// foreign key; FolderOrder then VideoOrder define the canonical display order.
// Duplicate folder+title pairs are allowed.
type Video struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Folder      string    `json:"folder" gorm:"not null;size:255"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	FolderOrder int       `json:"folderOrder" gorm:"not null"`
	VideoOrder  int       `json:"videoOrder" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VideoPatch carries only the fields present in a partial update. Nil means
// "leave unchanged".
type VideoPatch struct {
	Folder      *string
	Title       *string
	FolderOrder *int
	VideoOrder  *int
}

// Empty reports whether the patch changes nothing.
func (p VideoPatch) Empty() bool {
	return p.Folder == nil && p.Title == nil && p.FolderOrder == nil && p.VideoOrder == nil
}
