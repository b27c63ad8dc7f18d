package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DBDriver     string
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	UserCacheTTL time.Duration
	LogLevel     string
	SwaggerHost  string
	ResetDB      bool
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present; variables that are
// already set win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", getEnv("PORT", "8080")),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DatabaseURL:  getEnv("DATABASE_URL", getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local")),
		JWTSecret:    getEnv("JWT_SECRET", getEnv("JWT_SECRET_KEY", "change-me")),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:   getEnvInt("BCRYPT_COST", 10),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		UserCacheTTL: getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
		ResetDB:      getEnvBool("RESET_DB", false),
	}
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

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
