package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/studytrack/progress-service/internal/cache"
	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

const videoListCacheKey = "list"

type videoRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewVideoRepository(db *gorm.DB, cacheManager *cache.CacheManager) repositories.VideoRepository {
	return &videoRepository{db: db, cache: cacheManager.Video}
}

func (r *videoRepository) GetAll(ctx context.Context) ([]*models.Video, error) {
	var cached []*models.Video
	if err := r.cache.Get(ctx, videoListCacheKey, &cached); err == nil {
		return cached, nil
	}

	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Order("folder_order ASC, video_order ASC").
		Find(&videos).Error
	if err != nil {
		return nil, handleDBError(err, "get all videos")
	}

	// Best effort; a cold cache just means another query next time.
	_ = r.cache.Set(ctx, videoListCacheKey, videos, cache.VideoCacheTTL)

	return videos, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&videos).Error
	if err != nil {
		return nil, handleDBError(err, "get video by id")
	}
	if len(videos) == 0 {
		return nil, nil
	}
	return &videos[0], nil
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return handleDBError(err, "create video")
	}
	_ = r.cache.Delete(ctx, videoListCacheKey)
	return nil
}

func (r *videoRepository) Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	updates := map[string]interface{}{}
	if patch.Folder != nil {
		updates["folder"] = *patch.Folder
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.FolderOrder != nil {
		updates["folder_order"] = *patch.FolderOrder
	}
	if patch.VideoOrder != nil {
		updates["video_order"] = *patch.VideoOrder
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Video{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, handleDBError(res.Error, "update video")
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update video: %w", repositories.ErrNotFound)
		}
	}

	video, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, fmt.Errorf("update video: %w", repositories.ErrNotFound)
	}

	_ = r.cache.Delete(ctx, videoListCacheKey)
	return video, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Video{}, "id = ?", id)
	if res.Error != nil {
		return handleDBError(res.Error, "delete video")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete video: %w", repositories.ErrNotFound)
	}
	_ = r.cache.Delete(ctx, videoListCacheKey)
	return nil
}
