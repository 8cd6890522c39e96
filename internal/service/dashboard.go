package service

import (
	"context"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) GetStats(ctx context.Context, userID int32) (*domain.DashboardStats, error) {
	return s.dashboardRepo.GetStats(ctx, userID)
}
