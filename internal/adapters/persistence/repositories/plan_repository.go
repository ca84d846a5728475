package repositories

import (
	"context"

	"quantfund-staking/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// planRepository implements PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new staking plan repository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// GetByID gets an active plan by ID
func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.StakingPlan, error) {
	var plan models.StakingPlan
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive lists all active plans ordered by price
func (r *planRepository) ListActive(ctx context.Context) ([]*models.StakingPlan, error) {
	var plans []*models.StakingPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
