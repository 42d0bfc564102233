package infrastructures

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	REDIS_ADDRESS  string
	REDIS_PASSWORD string

	STEAM_BASE_URL      string
	STEAM_API_KEY       string
	STEAM_MAX_REQUESTS  int
	STEAM_WINDOW        time.Duration
	STEAM_DAILY_QUOTA   int64
	STEAM_MONTHLY_QUOTA int64

	BUFF_BASE_URL      string
	BUFF_API_KEY       string
	BUFF_MAX_REQUESTS  int
	BUFF_WINDOW        time.Duration
	BUFF_DAILY_QUOTA   int64
	BUFF_MONTHLY_QUOTA int64

	HTTP_TIMEOUT         time.Duration
	HTTP_MAX_RETRIES     int
	HTTP_RETRY_DELAY     time.Duration
	HTTP_MAX_RETRY_DELAY time.Duration
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		REDIS_ADDRESS:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		REDIS_PASSWORD: getEnv("REDIS_PASSWORD", ""),

		STEAM_BASE_URL:      getEnv("STEAM_BASE_URL", "https://steamcommunity.com"),
		STEAM_API_KEY:       getEnv("STEAM_API_KEY", ""),
		STEAM_MAX_REQUESTS:  getEnvInt("STEAM_MAX_REQUESTS", 20),
		STEAM_WINDOW:        getEnvDuration("STEAM_WINDOW", time.Minute),
		STEAM_DAILY_QUOTA:   getEnvInt64("STEAM_DAILY_QUOTA", 10000),
		STEAM_MONTHLY_QUOTA: getEnvInt64("STEAM_MONTHLY_QUOTA", 100000),

		BUFF_BASE_URL:      getEnv("BUFF_BASE_URL", "https://buff.163.com"),
		BUFF_API_KEY:       getEnv("BUFF_API_KEY", ""),
		BUFF_MAX_REQUESTS:  getEnvInt("BUFF_MAX_REQUESTS", 60),
		BUFF_WINDOW:        getEnvDuration("BUFF_WINDOW", time.Minute),
		BUFF_DAILY_QUOTA:   getEnvInt64("BUFF_DAILY_QUOTA", 20000),
		BUFF_MONTHLY_QUOTA: getEnvInt64("BUFF_MONTHLY_QUOTA", 0),

		HTTP_TIMEOUT:         getEnvDuration("HTTP_TIMEOUT", 8*time.Second),
		HTTP_MAX_RETRIES:     getEnvInt("HTTP_MAX_RETRIES", 3),
		HTTP_RETRY_DELAY:     getEnvDuration("HTTP_RETRY_DELAY", 250*time.Millisecond),
		HTTP_MAX_RETRY_DELAY: getEnvDuration("HTTP_MAX_RETRY_DELAY", 4*time.Second),
	}

	return Config
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
