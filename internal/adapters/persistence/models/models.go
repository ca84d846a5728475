package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & Account Tables
// ============================================================

// Account represents accounts table (one record per wallet address)
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Address      string    `gorm:"uniqueIndex;size:42;not null" json:"address"`
	ReferralCode string    `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	ReferredBy   *uint     `gorm:"index" json:"referred_by,omitempty"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// Role returns the session role for this account
func (a *Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Session roles
const (
	RoleUser  = "user"
	RoleAdmin = "cpadmin"
)

// AccountResponse DTO returned by the login endpoint
type AccountResponse struct {
	ID           uint   `json:"id"`
	Address      string `json:"address"`
	ReferralCode string `json:"referral_code"`
	AuthToken    string `json:"authToken"`
	IsAdmin      bool   `json:"is_admin"`
}

// ============================================================
// Staking Tables
// ============================================================

// Position status values. A position never returns to active.
const (
	PositionActive  = "active"
	PositionClaimed = "claimed"
	PositionSold    = "sold"
)

// StakingPlan represents the rate-plan catalog (master data, seeded at boot)
type StakingPlan struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Code       string          `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name       string          `gorm:"size:100;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"price"`
	RewardRate decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"reward_rate"`
	PeriodDays int             `gorm:"not null" json:"period_days"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (StakingPlan) TableName() string {
	return "staking_plans"
}

// StakingPosition represents staking_positions table.
// TokenAmount and RewardRate are snapshotted from the plan at creation and
// never change afterwards, even if the plan does.
type StakingPosition struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	AccountID         uint            `gorm:"index;not null" json:"account_id"`
	PlanID            uint            `gorm:"index;not null" json:"plan_id"`
	TokenAmount       decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"token_amount"`
	RewardRate        decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"reward_rate"`
	RemainingQuantity decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"remaining_quantity"`
	Status            string          `gorm:"size:20;default:'active';index" json:"status"`
	PeriodEnd         time.Time       `gorm:"not null" json:"period_end"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Account           Account         `gorm:"foreignKey:AccountID" json:"-"`
}

func (StakingPosition) TableName() string {
	return "staking_positions"
}

// IsMatured reports whether the staking period has ended
func (p *StakingPosition) IsMatured(now time.Time) bool {
	return !now.Before(p.PeriodEnd)
}

// RewardOwed returns reward_rate × remaining_quantity
func (p *StakingPosition) RewardOwed() decimal.Decimal {
	return p.RewardRate.Mul(p.RemainingQuantity)
}

// ============================================================
// Reward Ledger
// ============================================================

// Reward entry kinds
const (
	RewardKindClaim = "claim"
	RewardKindSell  = "sell"
)

// RewardEntry represents reward_entries table — one credit per claim/sell
type RewardEntry struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	AccountID  uint            `gorm:"index;not null" json:"account_id"`
	PositionID uint            `gorm:"index;not null" json:"position_id"`
	Kind       string          `gorm:"size:10;not null" json:"kind"`
	Amount     decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"amount"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (RewardEntry) TableName() string {
	return "reward_entries"
}

// ============================================================
// Withdrawals
// ============================================================

// Withdrawal status values
const (
	WithdrawalPending   = "pending"
	WithdrawalCancelled = "cancelled"
	WithdrawalExpired   = "expired"
)

// Withdrawal represents withdrawals table
type Withdrawal struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AccountID uint            `gorm:"index;not null" json:"account_id"`
	ToAddress string          `gorm:"size:42;not null" json:"to_address"`
	Amount    decimal.Decimal `gorm:"type:decimal(32,18);not null" json:"amount"`
	Status    string          `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// AutoMigrate migrates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&StakingPlan{},
		&StakingPosition{},
		&RewardEntry{},
		&Withdrawal{},
	)
}
