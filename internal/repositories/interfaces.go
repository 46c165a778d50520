package repositories

import (
	"context"
	"errors"

	"github.com/studytrack/progress-service/internal/models"
)

// Sentinel errors. Lookup misses are NOT errors: the single-row getters
// return (nil, nil) so callers decide what absence means.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// ProfileRepository mediates access to identity records.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
}

// RoleRepository mediates access to role assignments.
type RoleRepository interface {
	// Set is a one-shot insert; re-assigning an existing user id fails with
	// ErrDuplicate.
	Set(ctx context.Context, role *models.UserRole) error
	Get(ctx context.Context, userID string) (*models.UserRole, error)
	AdminExists(ctx context.Context) (bool, error)
}

// VideoRepository mediates access to the catalog.
type VideoRepository interface {
	// GetAll returns the canonical display order: (folder_order, video_order)
	// ascending.
	GetAll(ctx context.Context) ([]*models.Video, error)
	GetByID(ctx context.Context, id string) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	// Update applies a partial patch; ErrNotFound when the id is absent.
	Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

// ProgressRepository mediates access to completion records.
type ProgressRepository interface {
	GetByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error)
	GetByUserAndVideo(ctx context.Context, userID, videoID string) (*models.StudentProgress, error)
	// Upsert atomically inserts or updates the (user, video) row and returns
	// the stored record, keeping the original row id on update.
	Upsert(ctx context.Context, record *models.StudentProgress) (*models.StudentProgress, error)
	// GetAll returns every record joined with its profile (when one still
	// exists), most recently updated first.
	GetAll(ctx context.Context) ([]*models.StudentProgress, error)
}

// SessionRepository mediates access to server-side sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	// Get returns (nil, nil) for unknown or expired sessions; expired rows
	// are reaped lazily on lookup.
	Get(ctx context.Context, sid string) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
}

// Repository aggregates the per-entity repositories.
type Repository interface {
	Profile() ProfileRepository
	Role() RoleRepository
	Video() VideoRepository
	Progress() ProgressRepository
	Session() SessionRepository

	// WithTransaction executes fn with a Repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
