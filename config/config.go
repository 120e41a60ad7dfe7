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

	// App config
	Environment string

	// Payment config
	RazorpayKey    string
	RazorpaySecret string

	// Scheduler config (cron expressions with seconds precision)
	RecurringCostsSpec  string
	ExpiryRemindersSpec string

	// Cache config
	CacheTTLMinutes int
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set default database driver to PostgreSQL
	dbDriver := getEnv("DB_DRIVER", "postgres")

	AppConfig = Config{
		DBDriver:            dbDriver,
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "fleetrental"),
		DBPath:              getEnv("DB_PATH", "./fleetrental.db"), // Default SQLite database path
		JWTSecret:           getEnv("JWT_SECRET", "fleetrental_default_secret_key"),
		JWTExpiryHours:      getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		Environment:         getEnv("ENVIRONMENT", "development"),
		RazorpayKey:         getEnv("RAZORPAY_KEY", ""),
		RazorpaySecret:      getEnv("RAZORPAY_SECRET", ""),
		RecurringCostsSpec:  getEnv("RECURRING_COSTS_CRON", "0 0 3 * * *"),
		ExpiryRemindersSpec: getEnv("EXPIRY_REMINDERS_CRON", "0 0 8 * * *"),
		CacheTTLMinutes:     getEnvAsInt("CACHE_TTL_MINUTES", 5),
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

// GetJWTExpiration returns JWT expiration time
func GetJWTExpiration() time.Duration {
	return time.Duration(AppConfig.JWTExpiryHours) * time.Hour
}

// GetCacheTTL returns the default lifetime for cached read results
func GetCacheTTL() time.Duration {
	return time.Duration(AppConfig.CacheTTLMinutes) * time.Minute
}

// IsDevelopment returns true if the application is running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development"
}
