package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	UploadDir string
	Database  DatabaseConfig
	Shop      ShopConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// ShopConfig holds the shop identity printed on receipts
type ShopConfig struct {
	Name    string
	Address string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3210"),
		JWTSecret: jwtSecret,
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "laundry"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Shop: ShopConfig{
			Name:    getEnv("SHOP_NAME", "IFA CELL & LAUNDRY"),
			Address: getEnv("SHOP_ADDRESS", "Jl. Bumi Tamalanrea Permai No.18, Makassar"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
