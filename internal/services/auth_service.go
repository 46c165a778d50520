package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/validator"
)

const bcryptCost = 10

// Bootstrap credentials for the initial admin account. Deliberately fixed;
// the endpoint is single-shot and the response tells the operator to log in
// and change them.
const (
	adminUsername = "admin"
	adminPassword = "admin"
	adminName     = "Administrator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{repo: repo, logger: logger, validator: v}
}

func (s *authService) Signup(ctx context.Context, req *validator.SignupRequest) (*models.SessionUser, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	username := strings.ToLower(req.Username)

	// Friendly pre-check; the unique index is the real guarantee.
	existing, err := s.repo.Profile().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		UserID:   uuid.NewString(),
		Name:     req.Name,
		Username: username,
		Password: string(hash),
	}
	role := &models.UserRole{
		UserID: profile.UserID,
		Role:   models.RoleStudent,
	}

	// One transaction: no orphaned profile when the role insert fails.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Profile().Create(ctx, profile); err != nil {
			return err
		}
		return tx.Role().Set(ctx, role)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("user signed up", "user_id", profile.UserID, "username", username)

	return models.NewSessionUser(profile, role), nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*models.SessionUser, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	profile, err := s.repo.Profile().GetByUsername(ctx, strings.ToLower(req.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		// Same error as a bad password; do not leak which usernames exist.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := s.repo.Role().Get(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	s.logger.Info("user logged in", "user_id", profile.UserID)

	return models.NewSessionUser(profile, role), nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.SessionUser, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		return nil, nil
	}

	role, err := s.repo.Role().Get(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	return models.NewSessionUser(profile, role), nil
}

func (s *authService) BootstrapAdmin(ctx context.Context) (*models.SessionUser, error) {
	exists, err := s.repo.Role().AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		return nil, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		UserID:   uuid.NewString(),
		Name:     adminName,
		Username: adminUsername,
		Password: string(hash),
	}
	role := &models.UserRole{
		UserID: profile.UserID,
		Role:   models.RoleAdmin,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Profile().Create(ctx, profile); err != nil {
			return err
		}
		return tx.Role().Set(ctx, role)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("admin account bootstrapped", "user_id", profile.UserID)

	return models.NewSessionUser(profile, role), nil
}
