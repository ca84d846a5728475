package services

import (
	"context"
	"errors"
	"log"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Accepted principal range for a new position
var (
	minStakeAmount = decimal.RequireFromString("0.01")
	maxStakeAmount = decimal.NewFromInt(1000000)
)

// StakingService handles the staking position lifecycle. Every operation is
// scoped to the authenticated account; account IDs come from the auth gate,
// never from request input.
type StakingService struct {
	planRepo     repositories.PlanRepository
	positionRepo repositories.PositionRepository
}

// NewStakingService creates a new staking service
func NewStakingService(
	planRepo repositories.PlanRepository,
	positionRepo repositories.PositionRepository,
) *StakingService {
	return &StakingService{
		planRepo:     planRepo,
		positionRepo: positionRepo,
	}
}

// Create opens a new position on a plan. Principal and reward rate are
// snapshotted from the plan — the plan is authoritative, any client-supplied
// amount is ignored.
func (s *StakingService) Create(ctx context.Context, accountID, planID uint) (uint, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.NewNotFoundError("Invalid staking plan selected")
		}
		return 0, domain.NewInternalError(err)
	}

	tokenAmount := plan.Price
	if err := validation.NumericRange(tokenAmount, minStakeAmount, maxStakeAmount, "Token amount"); err != nil {
		return 0, domain.NewValidationError(err.Error())
	}

	position := &models.StakingPosition{
		AccountID:         accountID,
		PlanID:            plan.ID,
		TokenAmount:       tokenAmount,
		RewardRate:        plan.RewardRate,
		RemainingQuantity: tokenAmount,
		Status:            models.PositionActive,
		PeriodEnd:         time.Now().Add(time.Duration(plan.PeriodDays) * 24 * time.Hour),
	}

	if err := s.positionRepo.Create(ctx, position); err != nil {
		return 0, domain.NewInternalError(err)
	}

	log.Printf("✅ Staking created [account: %d, position: %d, amount: %s]",
		accountID, position.ID, tokenAmount.String())

	return position.ID, nil
}

// List returns the account's positions in creation order
func (s *StakingService) List(ctx context.Context, accountID uint, offset, limit int) ([]*models.StakingPosition, int64, error) {
	positions, total, err := s.positionRepo.ListByAccount(ctx, accountID, offset, limit)
	if err != nil {
		return nil, 0, domain.NewInternalError(err)
	}
	return positions, total, nil
}

// Claim converts accrued reward on a matured position into a credited
// balance. The position must be active and past its period end; the claimed
// state is terminal with respect to further claims.
func (s *StakingService) Claim(ctx context.Context, accountID, positionID uint) (decimal.Decimal, error) {
	position, err := s.positionRepo.GetOwned(ctx, accountID, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, claimNotAvailable()
		}
		return decimal.Zero, domain.NewInternalError(err)
	}

	if position.Status != models.PositionActive || !position.IsMatured(time.Now()) {
		return decimal.Zero, claimNotAvailable()
	}

	reward := position.RewardOwed()
	if !reward.IsPositive() {
		return decimal.Zero, domain.NewValidationError("No rewards available to claim")
	}

	// The conditional settlement arbitrates concurrent claims on the same
	// position: the loser sees settled=false here. Status flip and reward
	// credit commit together.
	settled, err := s.positionRepo.SettleClaim(ctx, accountID, positionID, reward)
	if err != nil {
		return decimal.Zero, domain.NewInternalError(err)
	}
	if !settled {
		return decimal.Zero, claimNotAvailable()
	}

	log.Printf("✅ Reward claimed [account: %d, position: %d, amount: %s]",
		accountID, positionID, reward.String())

	return reward, nil
}

// Sell liquidates a position's remaining quantity. A claimed position stays
// sellable until its remaining quantity is zeroed; only sold is excluded.
// The settlement amount is re-computed at sell time.
func (s *StakingService) Sell(ctx context.Context, accountID, positionID uint) (decimal.Decimal, error) {
	position, err := s.positionRepo.GetOwned(ctx, accountID, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, sellNotFound()
		}
		return decimal.Zero, domain.NewInternalError(err)
	}

	if position.Status == models.PositionSold {
		return decimal.Zero, sellNotFound()
	}

	amount := position.RewardOwed()

	settled, err := s.positionRepo.SettleSell(ctx, accountID, positionID, amount)
	if err != nil {
		return decimal.Zero, domain.NewInternalError(err)
	}
	if !settled {
		return decimal.Zero, sellNotFound()
	}

	log.Printf("✅ Staking sold [account: %d, position: %d, amount: %s]",
		accountID, positionID, amount.String())

	return amount, nil
}

// ListPlans returns the active plan catalog
func (s *StakingService) ListPlans(ctx context.Context) ([]*models.StakingPlan, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return plans, nil
}

func claimNotAvailable() *domain.AppError {
	return domain.NewValidationError("Claim not available yet. Please wait until the staking period ends.")
}

func sellNotFound() *domain.AppError {
	return domain.NewNotFoundError("Staking record not found or already sold")
}
