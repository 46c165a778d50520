package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) repositories.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	var records []*models.StudentProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, handleDBError(err, "get user progress")
	}
	return records, nil
}

func (r *progressRepository) GetByUserAndVideo(ctx context.Context, userID, videoID string) (*models.StudentProgress, error) {
	var records []models.StudentProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, handleDBError(err, "get progress by user and video")
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Upsert relies on the (user_id, video_id) unique index: concurrent requests
// for the same pair cannot create duplicates, and an update keeps the
// original row id thanks to RETURNING.
func (r *progressRepository) Upsert(ctx context.Context, record *models.StudentProgress) (*models.StudentProgress, error) {
	record.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"completed":    record.Completed,
					"completed_at": record.CompletedAt,
					"updated_at":   record.UpdatedAt,
				}),
			},
			clause.Returning{},
		).
		Create(record).Error
	if err != nil {
		return nil, handleDBError(err, "upsert progress")
	}
	return record, nil
}

func (r *progressRepository) GetAll(ctx context.Context) ([]*models.StudentProgress, error) {
	var records []*models.StudentProgress
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, handleDBError(err, "get all progress")
	}
	return records, nil
}
