package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DBPath           string
	SecureCookie     bool
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	LoginRatePerMin  int
}

// Load reads configuration from the environment, consulting .env files
// when present. Missing values fall back to defaults suitable for local use.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	return Config{
		AppEnv:           getenv("APP_ENV", "development"),
		Port:             getenv("PORT", "8080"),
		DBPath:           getenv("DB_PATH", "fintrack.db"),
		SecureCookie:     getenvBool("SECURE_COOKIE", false),
		HTTPReadTimeout:  time.Second * time.Duration(getenvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getenvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getenvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		LoginRatePerMin:  getenvInt("LOGIN_RATE_PER_MINUTE", 10),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
