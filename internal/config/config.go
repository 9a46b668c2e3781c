package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Intent extractor (Gemini)
	GeminiAPIKey string
	GeminiModel  string

	// Calendar collaborator
	GoogleCredentialsFile string
	CalendarID            string

	// Scheduling policy
	Timezone     string
	WorkDayStart string // "HH:MM", 24h clock
	WorkDayEnd   string
	SlotMinutes  int
	MaxDaysAhead int
	MaxSlotsShown int

	// Session storage
	UseMemoryStore bool
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool
	SessionTTL     time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	MessageRatePerSec  float64
	MessageBurst       int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		CalendarID:            getEnv("CALENDAR_ID", "primary"),

		Timezone:      getEnv("BOOKING_TIMEZONE", "Asia/Kolkata"),
		WorkDayStart:  getEnv("WORK_DAY_START", "09:00"),
		WorkDayEnd:    getEnv("WORK_DAY_END", "18:00"),
		SlotMinutes:   getEnvAsInt("SLOT_MINUTES", 30),
		MaxDaysAhead:  getEnvAsInt("MAX_DAYS_AHEAD", 1),
		MaxSlotsShown: getEnvAsInt("MAX_SLOTS_SHOWN", 8),

		UseMemoryStore: getEnvAsBool("USE_MEMORY_STORE", false),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		MessageRatePerSec:  getEnvAsFloat("MESSAGE_RATE_PER_SEC", 2),
		MessageBurst:       getEnvAsInt("MESSAGE_BURST", 5),
	}
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
