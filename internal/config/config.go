// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and treated as immutable
type Config struct {
	// Database
	DatabaseURL    string
	SkipMigrations bool

	// Server
	Port               string
	CORSAllowedOrigins []string

	// Logging
	LogFormat string
	LogLevel  string

	// Auth
	JWTSecret string

	// Rate limit
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisURL          string

	// Blobs
	BlobBackend       string // "local" or "s3"
	BlobLocalDir      string
	BlobPublicBaseURL string
	MaxUploadBytes    int
	BlobMaxDimension  int
	BlobUploadTimeout time.Duration

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	// Posts and feeds
	MaxFilesPerPost int
	FeedPageSize    int
	FeedMaxPageSize int

	// Tracing
	OTelEndpoint    string
	OTelServiceName string
	OTelInsecure    bool
	Environment     string
}

// LoadDotEnv loads ENV_FILE, or ./.env, into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads Config from the environment. Every missing required variable
// is reported in one error.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	cfg.BlobBackend = strings.ToLower(getEnvString("BLOB_BACKEND", "local"))
	if cfg.BlobBackend == "s3" {
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
		if cfg.S3Endpoint == "" {
			missing = append(missing, "S3_ENDPOINT")
		}
		cfg.S3Bucket = os.Getenv("S3_BUCKET")
		if cfg.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	if cfg.BlobBackend != "local" && cfg.BlobBackend != "s3" {
		return nil, fmt.Errorf("BLOB_BACKEND must be \"local\" or \"s3\", got %q", cfg.BlobBackend)
	}

	cfg.SkipMigrations = getEnvBool("SKIP_MIGRATIONS", false)
	cfg.Port = getEnvString("APP_PORT", "8080")
	cfg.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	cfg.LogFormat = getEnvString("LOG_FORMAT", "text")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	cfg.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.BlobLocalDir = getEnvString("BLOB_LOCAL_DIR", "./data/blobs")
	cfg.BlobPublicBaseURL = os.Getenv("BLOB_PUBLIC_BASE_URL")
	if cfg.BlobPublicBaseURL == "" && cfg.BlobBackend == "local" {
		cfg.BlobPublicBaseURL = "http://localhost:" + cfg.Port
	}
	cfg.MaxUploadBytes = getEnvInt("MAX_UPLOAD_BYTES", 6291456)
	cfg.BlobMaxDimension = getEnvInt("BLOB_MAX_DIMENSION", 2048)
	cfg.BlobUploadTimeout = getEnvDuration("BLOB_UPLOAD_TIMEOUT", 30*time.Second)
	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3UseSSL = getEnvBool("S3_USE_SSL", false)
	cfg.MaxFilesPerPost = getEnvInt("MAX_FILES_PER_POST", 10)
	cfg.FeedPageSize = getEnvInt("FEED_PAGE_SIZE", 10)
	cfg.FeedMaxPageSize = getEnvInt("FEED_MAX_PAGE_SIZE", 50)
	cfg.OTelEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTelServiceName = getEnvString("OTEL_SERVICE_NAME", "compass")
	cfg.OTelInsecure = getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true)
	cfg.Environment = getEnvString("APP_ENV", "development")

	if cfg.FeedMaxPageSize < cfg.FeedPageSize {
		cfg.FeedMaxPageSize = cfg.FeedPageSize
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
