package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	ServerPort  string
	Environment string
	JWTExpiry   time.Duration
	JournalPath string

	// Listing cache
	CacheTTL time.Duration

	// Rate limiting (auth routes)
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
	RateLimitBlockTime   time.Duration
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers provide environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ServerPort:  getEnv("SERVER_PORT", ":3000"),
		Environment: os.Getenv("ENVIRONMENT"),
		JWTExpiry:   getEnvAsDuration("JWT_EXPIRY", "168h"),
		JournalPath: getEnv("JOURNAL_PATH", "data/journal.log"),

		CacheTTL: getEnvAsDuration("CACHE_TTL", "5m"),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitBlockTime:   getEnvAsDuration("RATE_LIMIT_BLOCK_TIME", "5m"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt retrieves an environment variable as int with a default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves an environment variable as duration with a default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
