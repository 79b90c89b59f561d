package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	StoreDriver   string
	DBConnTimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	LoginRate  float64
	LoginBurst int

	LogLevel  string
	LogFormat string
}

// Load reads .env if present, then the environment. A missing SESSION_SECRET
// gets a random per-process key, which is enough for a single-session tool.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnvStr(EnvDatabaseURL, DefaultDatabaseURL),
		StoreDriver:   strings.ToLower(getEnvStr(EnvStoreDriver, DefaultStoreDriver)),
		DBConnTimeout: getEnvDuration(EnvDBConnTimeout, DefaultDBConnTimeout),

		SessionSecret: os.Getenv(EnvSessionSecret),
		SessionTTL:    getEnvDuration(EnvSessionTTL, DefaultSessionTTL),

		LoginRate:  getEnvFloat(EnvLoginRate, DefaultLoginRate),
		LoginBurst: getEnvNum(EnvLoginBurst, DefaultLoginBurst),

		LogLevel:  strings.ToLower(getEnvStr(EnvLogLevel, DefaultLogLevel)),
		LogFormat: strings.ToLower(getEnvStr(EnvLogFormat, DefaultLogFormat)),
	}

	if cfg.StoreDriver != DriverPostgres && cfg.StoreDriver != DriverMemory {
		return nil, fmt.Errorf("%s: unknown driver %q", EnvStoreDriver, cfg.StoreDriver)
	}

	if cfg.SessionSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = hex.EncodeToString(b)
	}

	return cfg, nil
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
