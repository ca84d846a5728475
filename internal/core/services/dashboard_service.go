package services

import (
	"context"
	"time"

	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DashboardService aggregates platform statistics for admin views
type DashboardService struct {
	accountRepo    repositories.AccountRepository
	positionRepo   repositories.PositionRepository
	rewardRepo     repositories.RewardRepository
	withdrawalRepo repositories.WithdrawalRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	accountRepo repositories.AccountRepository,
	positionRepo repositories.PositionRepository,
	rewardRepo repositories.RewardRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) *DashboardService {
	return &DashboardService{
		accountRepo:    accountRepo,
		positionRepo:   positionRepo,
		rewardRepo:     rewardRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// DashboardStats represents platform-level aggregates
type DashboardStats struct {
	TotalAccounts        int64           `json:"total_accounts"`
	ActivePositions      int64           `json:"active_positions"`
	MaturedPositions     int64           `json:"matured_positions"`
	TotalStaked          decimal.Decimal `json:"total_staked"`
	TotalRewardsCredited decimal.Decimal `json:"total_rewards_credited"`
	PendingWithdrawals   int64           `json:"pending_withdrawals"`
}

// Overview collects all dashboard aggregates
func (s *DashboardService) Overview(ctx context.Context) (*DashboardStats, error) {
	accounts, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	active, err := s.positionRepo.CountActive(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	matured, err := s.positionRepo.CountMatured(ctx, time.Now())
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	staked, err := s.positionRepo.TotalStaked(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	rewards, err := s.rewardRepo.TotalCredited(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	pending, err := s.withdrawalRepo.CountPending(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &DashboardStats{
		TotalAccounts:        accounts,
		ActivePositions:      active,
		MaturedPositions:     matured,
		TotalStaked:          staked,
		TotalRewardsCredited: rewards,
		PendingWithdrawals:   pending,
	}, nil
}
