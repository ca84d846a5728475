package services

import (
	"context"
	"log"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/validation"

	"github.com/shopspring/decimal"
)

// Pending requests older than this are expired by the cron job
const withdrawalMaxAge = 24 * time.Hour

// WithdrawalService handles withdrawal requests
type WithdrawalService struct {
	withdrawalRepo repositories.WithdrawalRepository
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(withdrawalRepo repositories.WithdrawalRepository) *WithdrawalService {
	return &WithdrawalService{withdrawalRepo: withdrawalRepo}
}

// Request creates a pending withdrawal to an external wallet address
func (s *WithdrawalService) Request(ctx context.Context, accountID uint, toAddress string, amount decimal.Decimal) (*models.Withdrawal, error) {
	if !validation.IsValidEthereumAddress(toAddress) {
		return nil, domain.NewValidationError("Invalid withdrawal address format")
	}
	if err := validation.NumericRange(amount, minStakeAmount, maxStakeAmount, "Withdrawal amount"); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	withdrawal := &models.Withdrawal{
		AccountID: accountID,
		ToAddress: validation.NormalizeAddress(toAddress),
		Amount:    amount,
		Status:    models.WithdrawalPending,
	}

	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, domain.NewInternalError(err)
	}

	log.Printf("✅ Withdrawal requested [account: %d, withdrawal: %d, amount: %s]",
		accountID, withdrawal.ID, amount.String())

	return withdrawal, nil
}

// List returns the account's withdrawals, newest first
func (s *WithdrawalService) List(ctx context.Context, accountID uint, offset, limit int) ([]*models.Withdrawal, int64, error) {
	withdrawals, total, err := s.withdrawalRepo.ListByAccount(ctx, accountID, offset, limit)
	if err != nil {
		return nil, 0, domain.NewInternalError(err)
	}
	return withdrawals, total, nil
}

// Cancel cancels a pending withdrawal owned by the account
func (s *WithdrawalService) Cancel(ctx context.Context, accountID, id uint) error {
	cancelled, err := s.withdrawalRepo.CancelPending(ctx, accountID, id)
	if err != nil {
		return domain.NewInternalError(err)
	}
	if !cancelled {
		return domain.NewNotFoundError("Withdrawal not found or no longer pending")
	}

	log.Printf("✅ Withdrawal cancelled [account: %d, withdrawal: %d]", accountID, id)
	return nil
}

// ExpireStale expires pending withdrawals older than the max age
func (s *WithdrawalService) ExpireStale(ctx context.Context) (int64, error) {
	return s.withdrawalRepo.ExpireStale(ctx, time.Now().Add(-withdrawalMaxAge))
}
