package config

import (
	"log"

	"quantfund-staking/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	if err := seedStakingPlans(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedStakingPlans(db *gorm.DB) error {
	plans := []models.StakingPlan{
		{
			Code:       "STARTER",
			Name:       "Starter 30-day plan",
			Price:      decimal.NewFromInt(100),
			RewardRate: decimal.RequireFromString("0.05"),
			PeriodDays: 30,
			IsActive:   true,
		},
		{
			Code:       "GROWTH",
			Name:       "Growth 90-day plan",
			Price:      decimal.NewFromInt(1000),
			RewardRate: decimal.RequireFromString("0.18"),
			PeriodDays: 90,
			IsActive:   true,
		},
		{
			Code:       "PRIME",
			Name:       "Prime 180-day plan",
			Price:      decimal.NewFromInt(5000),
			RewardRate: decimal.RequireFromString("0.40"),
			PeriodDays: 180,
			IsActive:   true,
		},
	}

	for _, plan := range plans {
		var count int64
		db.Model(&models.StakingPlan{}).Where("code = ?", plan.Code).Count(&count)
		if count == 0 {
			if err := db.Create(&plan).Error; err != nil {
				return err
			}
			log.Printf("  ➕ Seeded staking plan: %s", plan.Code)
		}
	}

	return nil
}
