package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/model"
	"telecom_assets/internal/repository"
	"telecom_assets/internal/utils"

	"go.uber.org/zap"
)

// UserService defines the admin operations on user accounts
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, actorID, id int) error
}

type userService struct {
	repo    repository.UserRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, m *metrics.Metrics, log *zap.Logger) UserService {
	return &userService{repo: repo, metrics: m, log: log}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create registers a user. Status defaults to active and the admin flag to false.
func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("nome", "campo obrigatório")
	}
	if req.Password == "" {
		return nil, invalid("senha", "campo obrigatório")
	}
	status := model.UserStatusActive
	if req.Status != nil {
		status = *req.Status
	}
	if !model.ValidUserStatus(status) {
		return nil, invalid("status", "use Ativo ou Inativo")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{Name: name, PasswordHash: hash, Status: status}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.metrics.IncUserMutation("create")
	s.log.Info("user created", zap.Int("user_id", user.ID), zap.String("name", user.Name))
	return user, nil
}

// Update applies the supplied fields only. An empty password keeps the
// current one.
func (s *userService) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("nome", "campo obrigatório")
		}
		user.Name = name
	}
	if req.Status != nil {
		if !model.ValidUserStatus(*req.Status) {
			return nil, invalid("status", "use Ativo ou Inativo")
		}
		user.Status = *req.Status
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.metrics.IncUserMutation("update")
	s.log.Info("user updated", zap.Int("user_id", user.ID))
	return user, nil
}

// Delete removes the user with the given id on behalf of actorID.
func (s *userService) Delete(ctx context.Context, actorID, id int) error {
	if actorID == id {
		return ErrSelfDeletion
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.metrics.IncUserMutation("delete")
	s.log.Info("user deleted", zap.Int("user_id", id), zap.Int("by", actorID))
	return nil
}
