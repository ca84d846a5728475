package middleware

import (
	"errors"
	"log"
	"time"

	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Setup configures all global middlewares for the application
func Setup(app *fiber.App, cfg *config.Config) {
	// Recover middleware - catches panics
	app.Use(recover.New())

	// Gzip compression
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Security headers (Helmet)
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// General API rate limiter (100 requests per 15 minutes per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "Too many requests, please try again later.")
		},
	}))

	// Request logger
	if cfg.IsDev() {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	} else {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	// CORS
	if cfg.IsDev() {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     "*",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false,
		}))
	} else {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.GetAllowedOrigins(),
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
		}))
	}
}

// AuthRateLimiter limits authentication attempts (5 per 15 minutes per IP).
// Successful logins don't count against the window.
func AuthRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-auth"
		},
		SkipSuccessfulRequests: true,
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "Too many authentication attempts, please try again later.")
		},
	})
}

// StakingRateLimiter limits staking mutations (10 per minute per IP)
func StakingRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-staking"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "Too many staking requests, please slow down.")
		},
	})
}

// WithdrawalRateLimiter limits withdrawal requests (10 per hour per IP)
func WithdrawalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Hour,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-withdrawal"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, "Too many withdrawal requests, please try again later.")
		},
	})
}

// ErrorHandler is the single boundary where domain failures become HTTP
// responses. Operational errors render their own status and message;
// anything unclassified is logged in full and rendered generic in prod.
func ErrorHandler(c *fiber.Ctx, err error) error {
	cfg := config.AppConfig

	if appErr, ok := domain.AsAppError(err); ok {
		if !appErr.Operational {
			log.Printf("❌ Non-operational error [%s %s]: %v", c.Method(), c.Path(), errors.Unwrap(appErr))
		}

		message := appErr.Message
		envelope := response.Envelope{
			Success: false,
			Status:  appErr.StatusCode,
			Message: message,
		}
		if len(appErr.Fields) > 0 {
			envelope.Errors = appErr.Fields
		}
		if cfg != nil && cfg.IsDev() {
			if cause := errors.Unwrap(appErr); cause != nil {
				envelope.Stack = cause.Error()
			}
		} else if !appErr.Operational {
			envelope.Message = "An unexpected error occurred"
		}
		return c.Status(appErr.StatusCode).JSON(envelope)
	}

	// Fiber's own errors (404 route, body limits, ...)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return response.Error(c, fiberErr.Code, fiberErr.Message)
	}

	log.Printf("❌ Unhandled error [%s %s]: %v", c.Method(), c.Path(), err)
	message := "An unexpected error occurred"
	if cfg != nil && cfg.IsDev() {
		message = err.Error()
	}
	return response.Error(c, fiber.StatusInternalServerError, message)
}
