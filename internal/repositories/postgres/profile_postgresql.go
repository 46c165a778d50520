package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create profile")
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&profiles).Error
	if err != nil {
		return nil, handleDBError(err, "get profile by user id")
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Limit(1).
		Find(&profiles).Error
	if err != nil {
		return nil, handleDBError(err, "get profile by username")
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, handleDBError(err, "get all profiles")
	}
	return profiles, nil
}
