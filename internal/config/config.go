package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	APIURL     string
	APITimeout time.Duration

	FirebaseAPIKey   string
	FirebaseAuthURL  string
	FirebaseTokenURL string

	SessionDBDriver string
	SessionDBDSN    string
	SessionTTL      time.Duration

	CookieSecret []byte
	CookieSecure bool
	CORSOrigins  []string

	Storage StorageConfig
}

// StorageConfig selects where presigned uploads land. Only the local mock
// backend uses it; the real backend presigns on its own.
type StorageConfig struct {
	Driver         string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3PublicBase   string
	LocalDir       string
	LocalURLPrefix string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:             fallback(os.Getenv("PORT"), "8080"),
		Environment:      fallback(os.Getenv("ENVIRONMENT"), "development"),
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		APIURL:           strings.TrimSpace(os.Getenv("KAMERO_API_URL")),
		APITimeout:       parseSeconds(os.Getenv("KAMERO_API_TIMEOUT"), 30*time.Second),
		FirebaseAPIKey:   strings.TrimSpace(os.Getenv("FIREBASE_API_KEY")),
		FirebaseAuthURL:  fallback(os.Getenv("FIREBASE_AUTH_URL"), "https://identitytoolkit.googleapis.com/v1"),
		FirebaseTokenURL: fallback(os.Getenv("FIREBASE_TOKEN_URL"), "https://securetoken.googleapis.com/v1"),
		SessionDBDriver:  strings.ToLower(fallback(os.Getenv("SESSION_DB_DRIVER"), "sqlite")),
		SessionDBDSN:     fallback(os.Getenv("SESSION_DB_DSN"), "file:admin_sessions.db?_busy_timeout=5000"),
		CookieSecret:     []byte(strings.TrimSpace(os.Getenv("COOKIE_SECRET"))),
		CORSOrigins:      parseCSV(os.Getenv("CORS_ORIGINS")),
		Storage: StorageConfig{
			Driver:         strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), "local")),
			S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
			S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
			S3Prefix:       fallback(os.Getenv("S3_PREFIX"), "uploads"),
			S3PublicBase:   strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
			LocalDir:       fallback(os.Getenv("LOCAL_UPLOAD_DIR"), "./storage/uploads"),
			LocalURLPrefix: fallback(os.Getenv("LOCAL_UPLOAD_URL_PREFIX"), "/uploads"),
		},
	}

	hours := fallback(os.Getenv("SESSION_TTL_HOURS"), "12")
	if ttl, err := strconv.Atoi(hours); err == nil && ttl > 0 {
		cfg.SessionTTL = time.Duration(ttl) * time.Hour
	} else {
		cfg.SessionTTL = 12 * time.Hour
	}

	// Secure cookies unless explicitly disabled outside production.
	cfg.CookieSecure = cfg.IsProduction()
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("COOKIE_SECURE"))); err == nil {
		cfg.CookieSecure = v
	}

	if cfg.APIURL == "" {
		return Config{}, errors.New("KAMERO_API_URL is required")
	}
	if cfg.FirebaseAPIKey == "" {
		return Config{}, errors.New("FIREBASE_API_KEY is required")
	}
	if len(cfg.CookieSecret) < 32 {
		return Config{}, errors.New("COOKIE_SECRET is required and must be at least 32 bytes")
	}
	switch cfg.SessionDBDriver {
	case "mysql", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown SESSION_DB_DRIVER: %s", cfg.SessionDBDriver)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseSeconds(value string, def time.Duration) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func parseLevel(value string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
