package services

import (
	"context"
	"log"
	"time"

	"quantfund-staking/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs: stale withdrawal expiry and a
// daily matured-position summary
type CronService struct {
	cron              *cron.Cron
	withdrawalService *WithdrawalService
	positionRepo      repositories.PositionRepository
}

// NewCronService creates a new cron service
func NewCronService(withdrawalService *WithdrawalService, positionRepo repositories.PositionRepository) *CronService {
	return &CronService{
		cron:              cron.New(),
		withdrawalService: withdrawalService,
		positionRepo:      positionRepo,
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() {
	s.cron.AddFunc("@hourly", s.expireStaleWithdrawals)
	s.cron.AddFunc("30 8 * * *", s.logMaturedPositions)
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler; running jobs finish on their own
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) expireStaleWithdrawals() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.withdrawalService.ExpireStale(ctx)
	if err != nil {
		log.Printf("❌ Withdrawal expiry job failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("⏰ Expired %d stale withdrawal(s)", expired)
	}
}

func (s *CronService) logMaturedPositions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	matured, err := s.positionRepo.CountMatured(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Maturity summary job failed: %v", err)
		return
	}
	log.Printf("📊 %d position(s) matured and awaiting claim", matured)
}
