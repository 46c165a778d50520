package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studytrack/progress-service/internal/events"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/validator"
)

// serviceManager wires all services over one repository and publisher.
type serviceManager struct {
	repoManager repositories.RepositoryManager
	logger      *slog.Logger
	validator   *validator.Validator
	publisher   events.EventPublisher

	auth     AuthService
	video    VideoService
	progress ProgressService
	student  StudentService
}

// ServiceManagerConfig holds dependencies for service construction.
type ServiceManagerConfig struct {
	RepositoryManager repositories.RepositoryManager
	Logger            *slog.Logger
	Validator         *validator.Validator
	EventPublisher    events.EventPublisher
}

func NewServiceManager(cfg ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repoManager: cfg.RepositoryManager,
		logger:      cfg.Logger,
		validator:   cfg.Validator,
		publisher:   cfg.EventPublisher,
	}
}

// Initialize builds the services; the repository manager must already be
// initialized.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	repo := sm.repoManager.GetRepository()
	if repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	sm.auth = NewAuthService(repo, sm.logger, sm.validator)
	sm.video = NewVideoService(repo, sm.logger, sm.validator)
	sm.progress = NewProgressService(repo, sm.logger, sm.validator, sm.publisher)
	sm.student = NewStudentService(repo, sm.logger)

	sm.logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService         { return sm.auth }
func (sm *serviceManager) Video() VideoService       { return sm.video }
func (sm *serviceManager) Progress() ProgressService { return sm.progress }
func (sm *serviceManager) Student() StudentService   { return sm.student }

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	return sm.repoManager.HealthCheck(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("failed to close event publisher", "error", err)
		}
	}
	return sm.repoManager.Shutdown(ctx)
}
