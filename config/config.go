package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database config
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // SQLite database file path

	// Auth config
	JWTSecret      string
	JWTExpiryHours int

	// Seed admin account (created on first startup if no admin exists)
	AdminUsername string
	AdminPassword string

	// App config
	Environment string
	Port        string
	UploadDir   string
}

// Load reads the application configuration from the environment.
// The returned value is passed explicitly to the components that need it.
func Load() Config {
	return Config{
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "crimewatch"),
		DBPath:         getEnv("DB_PATH", "./crimewatch.db"),
		JWTSecret:      getEnv("JWT_SECRET", "crimewatch_default_secret_key"),
		JWTExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "5000"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
	}
}

// Helper function to get environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get integer environment variable with fallback
func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// JWTExpiration returns the configured JWT lifetime
func (c Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// IsDevelopment returns true if the application is running in development mode
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
