package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "dev-session-secret-change-me"

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string
	DBSeedPath   string // Optional: bundled database copied on first run

	// Security
	SessionSecret   string
	LoginRateLimit  int
	LoginRateWindow time.Duration
	TrustProxy      bool // Read client IPs from X-Forwarded-For / X-Real-IP

	// Observability (optional)
	SentryDSN string

	// Storage
	StorageDriver string // "local" or "s3"
	StaticDir     string // Local storage root, uploads live under <StaticDir>/uploads

	// Storage - S3 (only when STORAGE_DRIVER=s3)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services (MinIO, R2, etc.)
	S3PresignExpiry time.Duration // Expiry for photo URLs - default: 7 days
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Camera Log"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "5000"),

		// Database (/tmp is writable on most hosts)
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "/tmp/cameralite3.db"),
		DBSeedPath:   envString("DB_SEED_PATH", ""),

		// Security
		SessionSecret:   envString("SESSION_SECRET", ""),
		LoginRateLimit:  envInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: envDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		TrustProxy:      envBool("TRUST_PROXY", false),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		StaticDir:     envString("STATIC_DIR", "static"),
	}

	if cfg.StorageDriver == "s3" {
		cfg.S3Region = envRequired("S3_REGION")
		cfg.S3Bucket = envRequired("S3_BUCKET")
		cfg.S3AccessKey = envRequired("S3_ACCESS_KEY")
		cfg.S3SecretKey = envRequired("S3_SECRET_KEY")
		cfg.S3Endpoint = envString("S3_ENDPOINT", "")
		cfg.S3PresignExpiry = envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour)
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = devSessionSecret
	}

	return cfg
}

// validateProduction ensures secrets are configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.SessionSecret == "" {
		slog.Error("production deployment requires SESSION_SECRET",
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:       c.AppName,
		AppEnv:        c.AppEnv,
		Port:          c.Port,
		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint, // Needed for CSP img-src
	}
}
