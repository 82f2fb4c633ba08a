package service

import (
	"context"
	"fmt"

	"telecom_assets/internal/model"
	"telecom_assets/internal/repository"
)

// DashboardService aggregates the line collection
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	repo repository.LineRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo repository.LineRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// Stats computes the totals live on every call.
func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
