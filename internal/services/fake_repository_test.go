package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

// fakeRepository is an in-memory Repository with the same contract as the
// Postgres implementation: (nil, nil) lookups, ErrDuplicate on unique
// violations, atomic progress upsert.
type fakeRepository struct {
	mu       sync.Mutex
	profiles []*models.Profile
	roles    []*models.UserRole
	videos   []*models.Video
	progress []*models.StudentProgress
	sessions map[string]*models.Session
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{sessions: make(map[string]*models.Session)}
}

func (f *fakeRepository) Profile() repositories.ProfileRepository   { return (*fakeProfileRepo)(f) }
func (f *fakeRepository) Role() repositories.RoleRepository         { return (*fakeRoleRepo)(f) }
func (f *fakeRepository) Video() repositories.VideoRepository       { return (*fakeVideoRepo)(f) }
func (f *fakeRepository) Progress() repositories.ProgressRepository { return (*fakeProgressRepo)(f) }
func (f *fakeRepository) Session() repositories.SessionRepository   { return (*fakeSessionRepo)(f) }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

type fakeProfileRepo fakeRepository

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == profile.Username || p.UserID == profile.UserID {
			return repositories.ErrDuplicate
		}
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetAll(ctx context.Context) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

type fakeRoleRepo fakeRepository

func (f *fakeRoleRepo) Set(ctx context.Context, role *models.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.UserID == role.UserID {
			return repositories.ErrDuplicate
		}
	}
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	f.roles = append(f.roles, role)
	return nil
}

func (f *fakeRoleRepo) Get(ctx context.Context, userID string) (*models.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRepo) AdminExists(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

type fakeVideoRepo fakeRepository

func (f *fakeVideoRepo) GetAll(ctx context.Context) ([]*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Video, len(f.videos))
	copy(out, f.videos)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FolderOrder != out[j].FolderOrder {
			return out[i].FolderOrder < out[j].FolderOrder
		}
		return out[i].VideoOrder < out[j].VideoOrder
	})
	return out, nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *models.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	video.CreatedAt = time.Now()
	f.videos = append(f.videos, video)
	return nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
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

func (f *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, v := range f.videos {
		if v.ID == id {
			f.videos = append(f.videos[:i], f.videos[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeProgressRepo fakeRepository

func (f *fakeProgressRepo) GetByUser(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.StudentProgress
	for _, r := range f.progress {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) GetByUserAndVideo(ctx context.Context, userID, videoID string) (*models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.progress {
		if r.UserID == userID && r.VideoID == videoID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, record *models.StudentProgress) (*models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.progress {
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
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.progress = append(f.progress, record)
	return record, nil
}

func (f *fakeProgressRepo) GetAll(ctx context.Context) ([]*models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.StudentProgress, len(f.progress))
	copy(out, f.progress)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

type fakeSessionRepo fakeRepository

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.SID] = session
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, sid string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sid]
	if !ok {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		delete(f.sessions, sid)
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sid)
	return nil
}
