package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studytrack/progress-service/internal/events"
	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/validator"
)

type progressService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewProgressService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ProgressService {
	return &progressService{repo: repo, logger: logger, validator: v, publisher: publisher}
}

func (s *progressService) GetUserProgress(ctx context.Context, userID string) ([]*models.StudentProgress, error) {
	records, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	return records, nil
}

func (s *progressService) Upsert(ctx context.Context, userID string, req *validator.ProgressUpsertRequest) (*models.StudentProgress, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	completedAt, errs := resolveCompletedAt(req, time.Now())
	if errs != nil {
		return nil, errs
	}

	record := &models.StudentProgress{
		UserID:      userID,
		VideoID:     req.VideoID,
		Completed:   *req.Completed,
		CompletedAt: completedAt,
	}

	stored, err := s.repo.Progress().Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	if stored.Completed && stored.CompletedAt != nil {
		event := events.NewEvent(events.TopicVideoCompleted, events.VideoCompletedEvent{
			UserID:      stored.UserID,
			VideoID:     stored.VideoID,
			CompletedAt: *stored.CompletedAt,
		})
		if err := s.publisher.Publish(ctx, events.TopicVideoCompleted, event); err != nil {
			// The record is already stored; a lost event must not fail the request.
			s.logger.Error("failed to publish completion event", "error", err, "user_id", userID, "video_id", stored.VideoID)
		}
	}

	return stored, nil
}

func (s *progressService) GetAllProgress(ctx context.Context) ([]*models.StudentProgress, error) {
	records, err := s.repo.Progress().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	return records, nil
}

// resolveCompletedAt normalizes the completion timestamp: an explicit value
// is parsed, marking complete without one stamps "now", and anything else is
// null.
func resolveCompletedAt(req *validator.ProgressUpsertRequest, now time.Time) (*time.Time, validator.ValidationErrors) {
	if req.CompletedAt != nil && *req.CompletedAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.CompletedAt)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "CompletedAt",
				Message: "CompletedAt must be a valid RFC 3339 timestamp",
				Value:   *req.CompletedAt,
				Rule:    "datetime",
			}}
		}
		return &parsed, nil
	}
	if *req.Completed {
		return &now, nil
	}
	return nil, nil
}
