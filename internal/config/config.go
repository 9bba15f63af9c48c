package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	Env              string
	MySQLDSN         string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	JWTExpire        time.Duration
	CookieExpireDays int
	MaxFileUpload    int64
	FileUploadPath   string
	GeocoderURL      string
	GeocoderAPIKey   string
	SwaggerHost      string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "5000"),
		Env:              getEnv("APP_ENV", "development"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/foodshare?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		JWTExpire:        getEnvDuration("JWT_EXPIRE", 720*time.Hour),
		CookieExpireDays: getEnvInt("JWT_COOKIE_EXPIRE", 30),
		MaxFileUpload:    getEnvInt64("MAX_FILE_UPLOAD", 1_000_000),
		FileUploadPath:   getEnv("FILE_UPLOAD_PATH", "./public/uploads"),
		GeocoderURL:      getEnv("GEOCODER_URL", "https://www.mapquestapi.com"),
		GeocoderAPIKey:   os.Getenv("GEOCODER_API_KEY"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the server runs in production mode.
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

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
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
