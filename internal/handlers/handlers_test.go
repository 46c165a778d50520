package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studytrack/progress-service/internal/events"
	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
	"github.com/studytrack/progress-service/internal/validator"
)

const testSessionSecret = "test-secret"

// memoryRepository backs the handler tests with the same repository contract
// as the Postgres implementation.
type memoryRepository struct {
	mu       sync.Mutex
	profiles []*models.Profile
	roles    []*models.UserRole
	videos   []*models.Video
	progress []*models.StudentProgress
	sessions map[string]*models.Session
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: make(map[string]*models.Session)}
}

func (m *memoryRepository) Profile() repositories.ProfileRepository   { return (*memProfiles)(m) }
func (m *memoryRepository) Role() repositories.RoleRepository         { return (*memRoles)(m) }
func (m *memoryRepository) Video() repositories.VideoRepository       { return (*memVideos)(m) }
func (m *memoryRepository) Progress() repositories.ProgressRepository { return (*memProgress)(m) }
func (m *memoryRepository) Session() repositories.SessionRepository   { return (*memSessions)(m) }

func (m *memoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *memoryRepository) Ping(ctx context.Context) error { return nil }
func (m *memoryRepository) Close() error                   { return nil }

type memProfiles memoryRepository

func (m *memProfiles) Create(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Username == profile.Username || p.UserID == profile.UserID {
			return repositories.ErrDuplicate
		}
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *memProfiles) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProfiles) GetAll(ctx context.Context) ([]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Profile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

type memRoles memoryRepository

func (m *memRoles) Set(ctx context.Context, role *models.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.UserID == role.UserID {
			return repositories.ErrDuplicate
		}
	}
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	m.roles = append(m.roles, role)
	return nil
}

func (m *memRoles) Get(ctx context.Context, userID string) (*models.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRoles) AdminExists(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

type memVideos memoryRepository

func (m *memVideos) GetAll(ctx context.Context) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Video, len(m.videos))
	copy(out, m.videos)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FolderOrder != out[j].FolderOrder {
			return out[i].FolderOrder < out[j].FolderOrder
		}
		return out[i].VideoOrder < out[j].VideoOrder
	})
	return out, nil
}

func (m *memVideos) GetByID(ctx context.Context, id string) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (m *memVideos) Create(ctx context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	m.videos = append(m.videos, video)
	return nil
}

func (m *memVideos) Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.videos {
		if v.ID != id {
			continue
		}
		if patch.Folder != nil {
			v.Folder = *patch.Folder
		}
		if patch.Title != nil {
			v.Title = *patch.Title
		}
		if patch.FolderOrder != nil {
			v.FolderOrder = *patch.FolderOrder
		}
		if patch.VideoOrder != nil {
			v.VideoOrder = *patch.VideoOrder
		}
		return v, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memVideos) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.videos {
		if v.ID == id {
			m.videos = append(m.videos[:i], m.videos[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memProgress memoryRepository

func (m *memProgress) GetByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.StudentProgress
	for _, r := range m.progress {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memProgress) GetByUserAndVideo(ctx context.Context, userID, videoID string) (*models.StudentProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.progress {
		if r.UserID == userID && r.VideoID == videoID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memProgress) Upsert(ctx context.Context, record *models.StudentProgress) (*models.StudentProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.progress {
		if r.UserID == record.UserID && r.VideoID == record.VideoID {
			r.Completed = record.Completed
			r.CompletedAt = record.CompletedAt
			r.UpdatedAt = time.Now()
			return r, nil
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.UpdatedAt = time.Now()
	m.progress = append(m.progress, record)
	return record, nil
}

func (m *memProgress) GetAll(ctx context.Context) ([]*models.StudentProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.StudentProgress, len(m.progress))
	copy(out, m.progress)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

type memSessions memoryRepository

func (m *memSessions) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.SID] = session
	return nil
}

func (m *memSessions) Get(ctx context.Context, sid string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sid]
	if !ok {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		delete(m.sessions, sid)
		return nil, nil
	}
	return session, nil
}

func (m *memSessions) Delete(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// testServiceManager satisfies services.ServiceManager with pre-built services.
type testServiceManager struct {
	auth     services.AuthService
	video    services.VideoService
	progress services.ProgressService
	student  services.StudentService
}

func (t *testServiceManager) Auth() services.AuthService         { return t.auth }
func (t *testServiceManager) Video() services.VideoService       { return t.video }
func (t *testServiceManager) Progress() services.ProgressService { return t.progress }
func (t *testServiceManager) Student() services.StudentService   { return t.student }

func (t *testServiceManager) Initialize(ctx context.Context) error  { return nil }
func (t *testServiceManager) HealthCheck(ctx context.Context) error { return nil }
func (t *testServiceManager) Shutdown(ctx context.Context) error    { return nil }

// newTestRouter builds a full router over the in-memory repository.
func newTestRouter(repo *memoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogLogger)
	v := validator.New()
	publisher := events.NewMockEventPublisher(slogLogger)

	serviceManager := &testServiceManager{
		auth:     services.NewAuthService(repo, slogLogger, v),
		video:    services.NewVideoService(repo, slogLogger, v),
		progress: services.NewProgressService(repo, slogLogger, v, publisher),
		student:  services.NewStudentService(repo, slogLogger),
	}

	handlerManager := NewHandlerManager(HandlerManagerConfig{
		ServiceManager: serviceManager,
		Repository:     repo,
		Logger:         logger,
		SessionSecret:  testSessionSecret,
		IsProduction:   false,
	})

	router := gin.New()
	handlerManager.SetupRoutes(router)
	return router
}
