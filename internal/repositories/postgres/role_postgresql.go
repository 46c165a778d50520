package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) repositories.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Set(ctx context.Context, role *models.UserRole) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return handleDBError(err, "set user role")
	}
	return nil
}

func (r *roleRepository) Get(ctx context.Context, userID string) (*models.UserRole, error) {
	var roles []models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&roles).Error
	if err != nil {
		return nil, handleDBError(err, "get user role")
	}
	if len(roles) == 0 {
		return nil, nil
	}
	return &roles[0], nil
}

func (r *roleRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "count admin roles")
	}
	return count > 0, nil
}
