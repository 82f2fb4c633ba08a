package service

import (
	"context"
	"errors"
	"fmt"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/model"
	"telecom_assets/internal/repository"
	"telecom_assets/internal/session"
	"telecom_assets/internal/utils"

	"go.uber.org/zap"
)

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, name, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
	EnsureAdmin(ctx context.Context, name, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	revoked  session.RevocationStore
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, revoked session.RevocationStore, m *metrics.Metrics, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		revoked:  revoked,
		metrics:  m,
		log:      log,
	}
}

// Login checks the credentials and issues a session token.
func (s *authService) Login(ctx context.Context, name, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by name: %w", err)
	}
	if user == nil {
		s.metrics.IncLogin("unknown_user")
		return nil, "", ErrUserNotFound
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.metrics.IncLogin("invalid_password")
		return nil, "", ErrInvalidPassword
	}
	if !user.IsActive() {
		s.metrics.IncLogin("inactive")
		return nil, "", ErrInactiveAccount
	}

	token, _, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	s.metrics.IncLogin("success")
	s.log.Info("user logged in", zap.Int("user_id", user.ID), zap.String("name", user.Name))
	return user, token, nil
}

// Logout revokes the token until it expires. An unparsable token is
// already unusable and is ignored.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.log.Info("user logged out", zap.Int("user_id", claims.UserID))
	return nil
}

// Authenticate resolves a session token to an active user.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("error finding session user: %w", err)
	}
	if user == nil || !user.IsActive() {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// EnsureAdmin seeds an active administrator when no user with that name exists.
func (s *authService) EnsureAdmin(ctx context.Context, name, password string) error {
	existing, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &model.User{Name: name, PasswordHash: hash, Status: model.UserStatusActive, IsAdmin: true}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	s.log.Info("admin user created", zap.String("name", name), zap.Int("user_id", admin.ID))
	return nil
}
