package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ApplicationName    string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnMaxIdleTimeSec int
	PingTimeoutSec     int
}

// MinIOConfig holds object storage settings for MinIO.
// An empty Endpoint disables article export.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// Enabled reports whether object storage was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost           string
	AppScheme         string
	Port              string
	LogLevel          string
	Timezone          string
	RequestTimeoutSec int
	Database          DatabaseConfig
	MinIO             MinIOConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RequestTimeout returns the per-request deadline, zero meaning none.
func (c *AppConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		AppScheme:         getEnv("APP_SCHEME", "http"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Timezone:          getEnv("APP_TIMEZONE", "UTC"),
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 10),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "blogapi"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnMaxIdleTimeSec: getEnvInt("DB_CONN_MAX_IDLE_TIME_SEC", 60),
			PingTimeoutSec:     getEnvInt("DB_PING_TIMEOUT_SEC", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "article-exports"),
			Region:    getEnv("MINIO_REGION", "us-east-1"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
