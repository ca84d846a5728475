package repositories

import (
	"context"
	"time"

	"quantfund-staking/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// AccountRepository defines account repository interface.
// Addresses are stored canonicalized lowercase; callers pass normalized input.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByAddress(ctx context.Context, address string) (*models.Account, error)
	Count(ctx context.Context) (int64, error)
}

// PlanRepository defines staking plan repository interface
type PlanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.StakingPlan, error)
	ListActive(ctx context.Context) ([]*models.StakingPlan, error)
}

// PositionRepository defines staking position repository interface.
// SettleClaim and SettleSell combine the conditional status transition with
// the reward credit in a single transaction: the ownership + status predicate
// arbitrates concurrent settlements (exactly one caller observes
// settled=true), and a position never reaches a terminal status without its
// ledger entry.
type PositionRepository interface {
	Create(ctx context.Context, position *models.StakingPosition) error
	GetOwned(ctx context.Context, accountID, id uint) (*models.StakingPosition, error)
	ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*models.StakingPosition, int64, error)
	SettleClaim(ctx context.Context, accountID, id uint, reward decimal.Decimal) (settled bool, err error)
	SettleSell(ctx context.Context, accountID, id uint, amount decimal.Decimal) (settled bool, err error)
	CountMatured(ctx context.Context, now time.Time) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	TotalStaked(ctx context.Context) (decimal.Decimal, error)
}

// RewardRepository defines the reward ledger interface (claim/sell credits)
type RewardRepository interface {
	Credit(ctx context.Context, entry *models.RewardEntry) error
	TotalCredited(ctx context.Context) (decimal.Decimal, error)
}

// WithdrawalRepository defines withdrawal repository interface
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*models.Withdrawal, int64, error)
	CancelPending(ctx context.Context, accountID, id uint) (cancelled bool, err error)
	ExpireStale(ctx context.Context, olderThan time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}
