// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the application reads at startup.
type Config struct {
	HTTPPort       int
	APIPrefix      string
	PublicBaseURL  string
	MaxUploadSize  int
	LoginRateLimit int

	DatabasePath  string
	DatabaseDebug bool

	JWTSecret       string
	BcryptCost      int
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	StoragePath string
}

// Load reads a .env file when one exists and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] Warning: failed to load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 3000),
		APIPrefix:      normalizePrefix(getEnv("API_URL", "/api/v1")),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		MaxUploadSize:  getEnvInt("MAX_UPLOAD_SIZE", 10*1024*1024),
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 10),

		DatabasePath:  getEnv("DB_PATH", "ecommerce.db"),
		DatabaseDebug: getEnvBool("DB_DEBUG", false),

		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		BcryptCost:      getEnvInt("BCRYPT_COST", 12),
		JWTIssuer:       getEnv("JWT_ISSUER", "ecommerce-api"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),

		StoragePath: getEnv("STORAGE_PATH", "/tmp/ecommerce-api"),
	}
}

// CacheEnabled reports whether a Redis address was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("[config] Warning: invalid integer for %s: %q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("[config] Warning: invalid boolean for %s: %q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("[config] Warning: invalid duration for %s: %q, using %s", key, value, defaultValue)
	}
	return defaultValue
}
