package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"quantfund-staking/internal/adapters/http/middleware"
	"quantfund-staking/internal/adapters/http/routes"
	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/adapters/persistence/repositories"
	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "quantfund-staking/docs" // Swagger docs
)

// @title Quant Fund Staking API
// @version 1.0
// @description Wallet-signature authentication and staking lifecycle API

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token issued by /auth/login-signature.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed staking plan catalog
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Start cron jobs (withdrawal expiry, maturity summary)
	withdrawalService := services.NewWithdrawalService(repositories.NewWithdrawalRepository(db))
	cronService := services.NewCronService(withdrawalService, repositories.NewPositionRepository(db))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Quant Fund Staking API v1.0",
		ErrorHandler: middleware.ErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
