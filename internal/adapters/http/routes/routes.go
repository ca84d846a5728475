package routes

import (
	"quantfund-staking/internal/adapters/http/handlers"
	"quantfund-staking/internal/adapters/http/middleware"
	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	positionRepo := repositories.NewPositionRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)

	// Initialize services
	authService := services.NewAuthService(accountRepo, cfg)
	stakingService := services.NewStakingService(planRepo, positionRepo)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo)
	dashboardService := services.NewDashboardService(accountRepo, positionRepo, rewardRepo, withdrawalRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	stakingHandler := handlers.NewStakingHandler(stakingService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1
	v1 := app.Group("/api/v1")

	// Auth gates
	authGate := middleware.AuthMiddleware(cfg)
	adminGate := middleware.AdminOnly()

	// Auth routes
	auth := v1.Group("/auth")
	auth.Post("/login-signature", middleware.AuthRateLimiter(), authHandler.LoginWithSignature)
	auth.Get("/me", authGate, authHandler.Me)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authGate, authHandler.Logout)

	// Staking routes
	staking := v1.Group("/staking")
	staking.Get("/plans", middleware.PlanCatalogCache(), stakingHandler.Plans)
	staking.Post("/", authGate, middleware.StakingRateLimiter(), stakingHandler.Create)
	staking.Get("/", authGate, stakingHandler.List)
	staking.Post("/claim", authGate, middleware.StakingRateLimiter(), stakingHandler.Claim)
	staking.Post("/sell", authGate, middleware.StakingRateLimiter(), stakingHandler.Sell)

	// Withdrawal routes
	withdrawals := v1.Group("/withdrawals", authGate)
	withdrawals.Post("/", middleware.WithdrawalRateLimiter(), withdrawalHandler.Request)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Delete("/:id", withdrawalHandler.Cancel)

	// Admin routes
	admin := v1.Group("/admin", authGate, adminGate)
	admin.Get("/dashboard", dashboardHandler.Overview)
}
