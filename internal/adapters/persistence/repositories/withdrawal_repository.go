package repositories

import (
	"context"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// withdrawalRepository implements WithdrawalRepository interface
type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

// Create creates a new withdrawal request
func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

// ListByAccount lists an account's withdrawals, newest first, with pagination
func (r *withdrawalRepository) ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*models.Withdrawal, int64, error) {
	var withdrawals []*models.Withdrawal
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&withdrawals).Error; err != nil {
		return nil, 0, err
	}

	return withdrawals, total, nil
}

// CancelPending cancels a pending withdrawal owned by the account. The status
// predicate keeps a concurrently expired/cancelled request from flipping twice.
func (r *withdrawalRepository) CancelPending(ctx context.Context, accountID, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("id = ? AND account_id = ? AND status = ?", id, accountID, models.WithdrawalPending).
		Update("status", models.WithdrawalCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireStale marks pending withdrawals created before olderThan as expired
func (r *withdrawalRepository) ExpireStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("status = ? AND created_at < ?", models.WithdrawalPending, olderThan).
		Update("status", models.WithdrawalExpired)
	return result.RowsAffected, result.Error
}

// CountPending counts pending withdrawals across all accounts
func (r *withdrawalRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalPending).
		Count(&count).Error
	return count, err
}
