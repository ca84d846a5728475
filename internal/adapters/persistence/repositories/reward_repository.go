package repositories

import (
	"context"

	"quantfund-staking/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// rewardRepository implements RewardRepository interface
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new reward ledger repository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

// Credit records a reward credit for an account
func (r *rewardRepository) Credit(ctx context.Context, entry *models.RewardEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// TotalCredited sums all credited rewards
func (r *rewardRepository) TotalCredited(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.RewardEntry{}).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
