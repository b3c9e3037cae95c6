// Package config loads application configuration from configs/.env and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "default_super_secret_key"

// Config holds all runtime configuration values.
type Config struct {
	Env     string
	GinMode string
	Port    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	BcryptCost     int
	CORSOrigins    []string
	TavilyAPIKey   string
	RabbitMQURL    string
	ShutdownPeriod time.Duration

	Login     LoginLimitConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Redis     RedisConfig
}

// LoginLimitConfig controls the per-username/IP lockout on /login.
type LoginLimitConfig struct {
	MaxFailures int
	Window      time.Duration
	BlockFor    time.Duration
}

// Load reads configs/.env (if present) and then the environment.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load("configs/.env")
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:     envStr("APP_ENV", "dev"),
		GinMode: envStr("GIN_MODE", "debug"),
		Port:    envStr("PORT", "8080"),

		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envStr("DB_PORT", "5432"),
		DBUser:     envStr("DB_USER", "postgres"),
		DBPassword: envStr("DB_PASSWORD", "postgres"),
		DBName:     envStr("DB_NAME", "postgres"),
		DBSSLMode:  envStr("DB_SSLMODE", "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTTL:      time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		RefreshTTL:     time.Duration(envInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		BcryptCost:     envInt("BCRYPT_COST", 10),
		CORSOrigins:    envList("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"),
		TavilyAPIKey:   os.Getenv("TAVILY_API_KEY"),
		RabbitMQURL:    envStr("RABBITMQ_URL", envStr("AMQP_URL", "")),
		ShutdownPeriod: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),

		Login: LoginLimitConfig{
			MaxFailures: envInt("LOGIN_MAX_FAILURES", 5),
			Window:      envDur("LOGIN_WINDOW", 15*time.Minute),
			BlockFor:    envDur("LOGIN_BLOCK_FOR", 15*time.Minute),
		},
		RateLimit: loadRateLimitConfig(),
		Cache:     loadCacheConfig(),
		Redis:     loadRedisConfig(),
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return Config{}, errors.New("JWT_SECRET environment variable is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST out of range: %d", cfg.BcryptCost)
	}
	if cfg.Login.MaxFailures < 1 {
		cfg.Login.MaxFailures = 1
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

func envList(k, d string) []string {
	var out []string
	for _, p := range strings.Split(envStr(k, d), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
