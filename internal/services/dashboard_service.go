package services

import (
	"context"
	"math"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"
)

var activeProjectStatuses = []models.ProjectStatus{
	models.ProjectStatusOpen,
	models.ProjectStatusInProgress,
	models.ProjectStatusPendingApproval,
	models.ProjectStatusRevisionRequested,
}

type DashboardService interface {
	Stats(ctx context.Context, userID string, userType models.UserType) (*dto.DashboardStatsResponse, error)
}

type DashboardServiceImpl struct {
	projectRepo repositories.ProjectRepository
	paymentRepo repositories.PaymentRepository
}

func NewDashboardService(projectRepo repositories.ProjectRepository, paymentRepo repositories.PaymentRepository) DashboardService {
	return &DashboardServiceImpl{
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
	}
}

// Stats returns the role-dependent dashboard counters. Designer
// earnings are the after-commission share of completed project
// budgets.
func (s *DashboardServiceImpl) Stats(ctx context.Context, userID string, userType models.UserType) (*dto.DashboardStatsResponse, error) {
	active, err := s.projectRepo.CountByUserAndStatus(userID, activeProjectStatuses)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	completed, err := s.projectRepo.CountByUserAndStatus(userID, []models.ProjectStatus{models.ProjectStatusCompleted})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if userType == models.UserTypeDesigner {
		totalBudget, err := s.projectRepo.SumCompletedBudgetByDesigner(userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		earnings := math.Round(totalBudget*(1-CommissionRate/100)*100) / 100
		return &dto.DashboardStatsResponse{
			Designer: &dto.DesignerStats{
				ActiveProjects:    active,
				CompletedProjects: completed,
				TotalEarnings:     earnings,
			},
		}, nil
	}

	spent, err := s.sumClientSpend(userID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		Client: &dto.ClientStats{
			ActiveProjects:    active,
			CompletedProjects: completed,
			TotalSpent:        spent,
		},
	}, nil
}

func (s *DashboardServiceImpl) sumClientSpend(clientID string) (float64, error) {
	total, err := s.paymentRepo.SumSucceededByClient(clientID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return total, nil
}
