package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/service"
)

// DefaultSecret signs links when DOWNLOAD_SECRET is unset. Fine for local
// development; Validate refuses it in prod.
const DefaultSecret = "folio-insecure-default-secret"

type Config struct {
	Secret          string        // Optional: link signing secret (default: DefaultSecret, refused in prod)
	PreviousSecrets []string      // Optional: secrets that still verify old links, comma separated
	SecretIsDefault bool          // Set when Secret fell back to DefaultSecret
	LinkTTL         time.Duration // Optional: link lifetime (default: 1h)
	Issuer          string        // Optional: iss claim (default: folio)
	PublicBaseURL   string        // Optional: prefix for issued link URLs (default: relative)
	CatalogFile     string        // Optional: YAML catalog seeded at startup (default: embedded catalog)
	DatabaseFile    string        // Optional: path to SQLite database file (default: ./folio.db)

	AdminToken      string // Optional: enables admin routes
	AdminTOTPSecret string // Optional: also require X-OTP on admin routes

	RevocationCacheSize  int           // Revocations held in memory (default: 10000)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Secret:               os.Getenv("DOWNLOAD_SECRET"),
		PreviousSecrets:      splitList(os.Getenv("DOWNLOAD_SECRET_PREVIOUS")),
		LinkTTL:              getEnvDurationOrDefault("DOWNLOAD_LINK_TTL", time.Hour),
		Issuer:               getEnvOrDefault("LINK_ISSUER", service.DefaultIssuer),
		PublicBaseURL:        os.Getenv("PUBLIC_BASE_URL"),
		CatalogFile:          os.Getenv("CATALOG_FILE"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "folio.db"),
		AdminToken:           os.Getenv("ADMIN_TOKEN"),
		AdminTOTPSecret:      os.Getenv("ADMIN_TOTP_SECRET"),
		RevocationCacheSize:  getEnvIntOrDefault("REVOCATION_CACHE_SIZE", service.DefaultRevocationCacheSize),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.Secret == "" {
		cfg.Secret = DefaultSecret
		cfg.SecretIsDefault = true
	}

	return cfg
}

// Validate rejects configurations the service must not start with.
func (c Config) Validate() error {
	var errs []error

	if c.Secret == "" {
		errs = append(errs, errors.New("DOWNLOAD_SECRET is empty"))
	}
	if c.Env == "prod" && (c.SecretIsDefault || c.Secret == DefaultSecret) {
		errs = append(errs, errors.New("DOWNLOAD_SECRET must be set in prod"))
	}
	if c.AdminTOTPSecret != "" && c.AdminToken == "" {
		errs = append(errs, errors.New("ADMIN_TOTP_SECRET needs ADMIN_TOKEN"))
	}
	if c.LinkTTL <= 0 {
		errs = append(errs, errors.New("DOWNLOAD_LINK_TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", service.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
