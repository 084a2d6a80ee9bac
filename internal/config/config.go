package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	StoreEngine   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	GeminiAPIKey string
	GeminiModel  string
	QuestTimeout time.Duration

	TimeZone string

	TokenSecret string
	TokenTTL    time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	ToastDuration       time.Duration
	LevelUpDuration     time.Duration
	MilestoneToastDelay time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),

		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordisland.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),

		StoreEngine:   getEnv("STORE_ENGINE", "sql"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "wordisland:"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		QuestTimeout: getEnvDuration("QUEST_TIMEOUT", 10*time.Second),

		TimeZone: getEnv("TIMEZONE", "Local"),

		TokenSecret: getEnv("TOKEN_SECRET", "change-me"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 365*24*time.Hour),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   getEnvBool("LOG_COMPRESS", false),

		ToastDuration:       getEnvDuration("TOAST_DURATION", 3*time.Second),
		LevelUpDuration:     getEnvDuration("LEVEL_UP_DURATION", 4*time.Second),
		MilestoneToastDelay: getEnvDuration("MILESTONE_TOAST_DELAY", 1500*time.Millisecond),
	}
}

// Location resolves TimeZone, falling back to the local zone
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("Warning: unknown TIMEZONE %q, using local time", c.TimeZone)
		return time.Local
	}
	return loc
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
