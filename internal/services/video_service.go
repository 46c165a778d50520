package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/validator"
)

type videoService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewVideoService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) VideoService {
	return &videoService{repo: repo, logger: logger, validator: v}
}

func (s *videoService) List(ctx context.Context) ([]*models.Video, error) {
	videos, err := s.repo.Video().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (s *videoService) Create(ctx context.Context, req *validator.VideoCreateRequest) (*models.Video, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	video := &models.Video{
		Folder:      req.Folder,
		Title:       req.Title,
		FolderOrder: *req.FolderOrder,
		VideoOrder:  *req.VideoOrder,
	}
	if err := s.repo.Video().Create(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	s.logger.Info("video created", "video_id", video.ID, "folder", video.Folder, "title", video.Title)
	return video, nil
}

func (s *videoService) Update(ctx context.Context, id string, req *validator.VideoUpdateRequest) (*models.Video, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	patch := models.VideoPatch{
		Folder:      req.Folder,
		Title:       req.Title,
		FolderOrder: req.FolderOrder,
		VideoOrder:  req.VideoOrder,
	}

	video, err := s.repo.Video().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("video updated", "video_id", id)
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Video().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("video deleted", "video_id", id)
	return nil
}
