package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	SkipAuth    bool
	Environment string
	AppId       string
	CORSOrigins string

	MongoURI string
	DBName   string

	CatalogDriver string // "mongo" or "postgres"
	PostgresDSN   string

	LogStore           string // "mongo" or "memory"
	LogRetentionDays   int
	LogCleanupSchedule string

	SyncLockTTL     time.Duration
	FeedSSLVerify   bool
	FeedSyncTimeout time.Duration
	FeedTestTimeout time.Duration
	FirstRunDelay   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-stocksync"),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "stocksync"),

		CatalogDriver: getEnv("CATALOG_DRIVER", "mongo"),
		PostgresDSN:   getEnv("POSTGRES_DSN", "postgres://localhost:5432/shop?sslmode=disable"),

		LogStore:           getEnv("LOG_STORE", "mongo"),
		LogRetentionDays:   getEnvInt("LOG_RETENTION_DAYS", 30),
		LogCleanupSchedule: getEnv("LOG_CLEANUP_SCHEDULE", "@daily"),

		SyncLockTTL:     getEnvDuration("SYNC_LOCK_TTL", time.Hour),
		FeedSSLVerify:   getEnv("FEED_SSL_VERIFY", "true") != "false",
		FeedSyncTimeout: getEnvDuration("FEED_SYNC_TIMEOUT", 60*time.Second),
		FeedTestTimeout: getEnvDuration("FEED_TEST_TIMEOUT", 30*time.Second),
		FirstRunDelay:   getEnvDuration("FIRST_RUN_DELAY", time.Minute),
	}, nil
}

// LogRetention is the age after which run log entries are purged.
func (c *Config) LogRetention() time.Duration {
	return time.Duration(c.LogRetentionDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
