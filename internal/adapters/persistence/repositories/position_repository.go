package repositories

import (
	"context"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// positionRepository implements PositionRepository interface
type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new staking position repository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

// Create creates a new staking position
func (r *positionRepository) Create(ctx context.Context, position *models.StakingPosition) error {
	return r.db.WithContext(ctx).Create(position).Error
}

// GetOwned gets a position by ID scoped to its owning account
func (r *positionRepository) GetOwned(ctx context.Context, accountID, id uint) (*models.StakingPosition, error) {
	var position models.StakingPosition
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// ListByAccount lists an account's positions in creation order with pagination
func (r *positionRepository) ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*models.StakingPosition, int64, error) {
	var positions []*models.StakingPosition
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.StakingPosition{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&positions).Error; err != nil {
		return nil, 0, err
	}

	return positions, total, nil
}

// SettleClaim flips status active → claimed and credits the reward in the
// same transaction. The status predicate makes the transition atomic: of two
// concurrent claims only one sees settled=true, and the credit rolls back if
// it cannot be written. RemainingQuantity is left untouched, a claimed
// position stays sellable.
func (r *positionRepository) SettleClaim(ctx context.Context, accountID, id uint, reward decimal.Decimal) (bool, error) {
	var settled bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StakingPosition{}).
			Where("id = ? AND account_id = ? AND status = ?", id, accountID, models.PositionActive).
			Update("status", models.PositionClaimed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(&models.RewardEntry{
			AccountID:  accountID,
			PositionID: id,
			Kind:       models.RewardKindClaim,
			Amount:     reward,
		}).Error; err != nil {
			return err
		}
		settled = true
		return nil
	})
	return settled, err
}

// SettleSell flips status to sold, zeroes remaining_quantity and credits the
// settlement amount, all in one transaction. Any not-yet-sold position
// qualifies (claimed positions remain liquidatable).
func (r *positionRepository) SettleSell(ctx context.Context, accountID, id uint, amount decimal.Decimal) (bool, error) {
	var settled bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StakingPosition{}).
			Where("id = ? AND account_id = ? AND status <> ?", id, accountID, models.PositionSold).
			Updates(map[string]interface{}{
				"status":             models.PositionSold,
				"remaining_quantity": decimal.Zero,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(&models.RewardEntry{
			AccountID:  accountID,
			PositionID: id,
			Kind:       models.RewardKindSell,
			Amount:     amount,
		}).Error; err != nil {
			return err
		}
		settled = true
		return nil
	})
	return settled, err
}

// CountMatured counts active positions whose staking period has ended
func (r *positionRepository) CountMatured(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StakingPosition{}).
		Where("status = ? AND period_end <= ?", models.PositionActive, now).
		Count(&count).Error
	return count, err
}

// CountActive counts all active positions
func (r *positionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StakingPosition{}).
		Where("status = ?", models.PositionActive).
		Count(&count).Error
	return count, err
}

// TotalStaked sums token_amount over active positions
func (r *positionRepository) TotalStaked(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.StakingPosition{}).
		Where("status = ?", models.PositionActive).
		Select("SUM(token_amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
