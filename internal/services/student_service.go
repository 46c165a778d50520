package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
)

type studentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) ListStudents(ctx context.Context) ([]*models.SessionUser, error) {
	profiles, err := s.repo.Profile().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	students := make([]*models.SessionUser, 0, len(profiles))
	for _, profile := range profiles {
		role, err := s.repo.Role().Get(ctx, profile.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role for %s: %w", profile.UserID, err)
		}
		students = append(students, models.NewSessionUser(profile, role))
	}
	return students, nil
}

func (s *studentService) GetStudentProgress(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	records, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student progress: %w", err)
	}
	return records, nil
}
