package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	Env             string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	FrontendURL     string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/pennywise?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		AccessSecret:    getEnv("JWT_ACCESS_SECRET", "change-me"),
		RefreshSecret:   getEnv("JWT_REFRESH_SECRET", "change-me-too"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_EXPIRES_IN", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_EXPIRES_IN", 7*24*time.Hour),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the app runs with production cookie policy.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
