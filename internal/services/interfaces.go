package services

import (
	"context"
	"errors"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/validator"
)

// Service-level sentinels; handlers translate these to HTTP statuses.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin user already exists")
)

// AuthService owns identity: signup, login, session resolution and the
// one-shot admin bootstrap.
type AuthService interface {
	// Signup creates profile and role together and returns the public user.
	// Returns validator.ValidationErrors for bad input and ErrUsernameTaken
	// for a duplicate username.
	Signup(ctx context.Context, req *validator.SignupRequest) (*models.SessionUser, error)

	// Login verifies credentials; ErrInvalidCredentials covers unknown
	// username and wrong password alike.
	Login(ctx context.Context, req *validator.LoginRequest) (*models.SessionUser, error)

	// CurrentUser resolves a session's user id to the public user shape.
	// Returns (nil, nil) when the profile no longer exists, so the caller
	// can destroy the stale session.
	CurrentUser(ctx context.Context, userID string) (*models.SessionUser, error)

	// BootstrapAdmin creates the fixed admin/admin account once; subsequent
	// calls fail with ErrAdminExists.
	BootstrapAdmin(ctx context.Context) (*models.SessionUser, error)
}

// VideoService owns the catalog.
type VideoService interface {
	List(ctx context.Context) ([]*models.Video, error)
	Create(ctx context.Context, req *validator.VideoCreateRequest) (*models.Video, error)
	Update(ctx context.Context, id string, req *validator.VideoUpdateRequest) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

// ProgressService owns completion records.
type ProgressService interface {
	GetUserProgress(ctx context.Context, userID string) ([]*models.StudentProgress, error)
	// Upsert toggles completion for (userID, req.VideoID); the operation is
	// idempotent per pair.
	Upsert(ctx context.Context, userID string, req *validator.ProgressUpsertRequest) (*models.StudentProgress, error)
	GetAllProgress(ctx context.Context) ([]*models.StudentProgress, error)
}

// StudentService backs the admin views.
type StudentService interface {
	ListStudents(ctx context.Context) ([]*models.SessionUser, error)
	GetStudentProgress(ctx context.Context, userID string) ([]*models.StudentProgress, error)
}

// ServiceManager owns service construction and lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Video() VideoService
	Progress() ProgressService
	Student() StudentService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
