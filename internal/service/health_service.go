package service

import (
	"context"
	"fmt"

	"telecom_assets/internal/repository"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReport summarizes service liveness for /teste.
type HealthReport struct {
	HasLines  bool
	UserCount int64
}

// HealthService checks the database
type HealthService interface {
	Ping(ctx context.Context) error
	Report(ctx context.Context) (*HealthReport, error)
}

type healthService struct {
	db    Pinger
	lines repository.LineRepository
	users repository.UserRepository
}

// NewHealthService creates a new HealthService
func NewHealthService(db Pinger, lines repository.LineRepository, users repository.UserRepository) HealthService {
	return &healthService{db: db, lines: lines, users: users}
}

func (s *healthService) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Report reports whether any line exists and how many users are registered.
func (s *healthService) Report(ctx context.Context) (*HealthReport, error) {
	lines, err := s.lines.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count lines: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &HealthReport{HasLines: lines > 0, UserCount: users}, nil
}
