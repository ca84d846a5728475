package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Session  SessionConfig
	Blocked  BlocklistConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret       string
	ExpiresHours int
}

// BlocklistConfig holds the set of wallet addresses denied at login
type BlocklistConfig struct {
	Addresses map[string]bool
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Session:  loadSessionConfig(appMode),
		Blocked:  loadBlocklistConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "quantfund_staking"),
	}
}

// loadSessionConfig loads session token config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	expiresHours, _ := strconv.Atoi(getEnv("SESSION_EXPIRES_HOURS", "24"))

	return SessionConfig{
		Secret:       getEnv(prefix+"JWT_SECRET", "default_secret"),
		ExpiresHours: expiresHours,
	}
}

// loadBlocklistConfig loads the blocked address set (comma separated env var)
func loadBlocklistConfig() BlocklistConfig {
	blocked := make(map[string]bool)
	for _, addr := range strings.Split(getEnv("BLOCKED_ADDRESSES", ""), ",") {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr != "" {
			blocked[addr] = true
		}
	}
	return BlocklistConfig{Addresses: blocked}
}

// IsBlocked reports whether a wallet address is in the blocklist
func (c *Config) IsBlocked(address string) bool {
	return c.Blocked.Addresses[strings.ToLower(address)]
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.quantfund.io"
	}
	return origins
}
