package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/studytrack/progress-service/internal/cache"
	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

type sessionRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewSessionRepository(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SessionRepository {
	return &sessionRepository{db: db, cache: cacheManager.Session}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return handleDBError(err, "create session")
	}
	_ = r.cache.Set(ctx, session.SID, session, cache.SessionCacheTTL)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sid string) (*models.Session, error) {
	var cached models.Session
	if err := r.cache.Get(ctx, sid, &cached); err == nil {
		if cached.Expired(time.Now()) {
			_ = r.Delete(ctx, sid)
			return nil, nil
		}
		return &cached, nil
	}

	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("sid = ?", sid).
		Limit(1).
		Find(&sessions).Error
	if err != nil {
		return nil, handleDBError(err, "get session")
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	session := &sessions[0]
	if session.Expired(time.Now()) {
		// Reap lazily; the stale cookie then resolves to Anonymous.
		_ = r.Delete(ctx, sid)
		return nil, nil
	}

	_ = r.cache.Set(ctx, sid, session, cache.SessionCacheTTL)
	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Session{}, "sid = ?", sid).Error; err != nil {
		return handleDBError(err, "delete session")
	}
	_ = r.cache.Delete(ctx, sid)
	return nil
}
