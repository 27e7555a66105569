package service

import (
	"context"
	"fmt"
	"kingtech-store/internal/dto"
	"kingtech-store/internal/money"
	"kingtech-store/internal/repository"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type statsServiceImpl struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

func NewStatsService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) StatsService {
	return &statsServiceImpl{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (s *statsServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	sales, err := s.orderRepo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}

	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	activeCount, err := s.productRepo.CountByAvailability(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}
	inactiveCount, err := s.productRepo.CountByAvailability(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("count inactive products: %w", err)
	}

	averagePerUser := int64(0)
	if userCount > 0 {
		averagePerUser = sales.TotalCents / userCount
	}

	return &dto.DashboardResponse{
		Sales: dto.DashboardSales{
			Amount:        money.FormatCents(sales.TotalCents),
			NumberOfSales: money.FormatCount(sales.Count),
		},
		Users: dto.DashboardUsers{
			UserCount:           money.FormatCount(userCount),
			AverageValuePerUser: money.FormatCents(averagePerUser),
		},
		Products: dto.DashboardProducts{
			ActiveCount:   money.FormatCount(activeCount),
			InactiveCount: money.FormatCount(inactiveCount),
		},
	}, nil
}
