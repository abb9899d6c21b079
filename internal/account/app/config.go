package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/mail"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Mail drivers.
const (
	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
)

type Config struct {
	Issuer          string        // Optional: issuer claim for tokens (default: accounts)
	SigningKeyFile  string        // Optional: PEM Ed25519 key, created if missing; ephemeral key when empty
	DatabaseDriver  string        // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile    string        // Optional: path to SQLite database file (default: ./accounts.db)
	DatabaseURL     string        // Required for postgres: pgx connection string
	PepperFile      string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	VerificationTTL time.Duration // Optional: lifetime of a verification link (default: 24h)
	VerifyURL       string        // Optional: public base the link is appended to (default: http://localhost:8080/verify)
	RequireVerified bool          // Optional: refuse login for unverified accounts (default: false)

	MailDriver string // Optional: log or smtp (default: log)
	SMTP       mail.Config

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after loading ./.env when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Issuer:          getEnvOrDefault("AUTH_ISSUER", "accounts"),
		SigningKeyFile:  os.Getenv("AUTH_SIGNING_KEY_FILE"),
		DatabaseDriver:  strings.ToLower(getEnvOrDefault("AUTH_DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:    getEnvOrDefault("AUTH_DATABASE_FILE", "accounts.db"),
		DatabaseURL:     os.Getenv("AUTH_DATABASE_URL"),
		PepperFile:      getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		VerificationTTL: getEnvDurationOrDefault("AUTH_VERIFICATION_TTL", 24*time.Hour),
		VerifyURL:       getEnvOrDefault("AUTH_VERIFY_URL", "http://localhost:8080/verify"),
		RequireVerified: getEnvBoolOrDefault("AUTH_REQUIRE_VERIFIED", false),

		MailDriver: strings.ToLower(getEnvOrDefault("MAIL_DRIVER", MailDriverLog)),
		SMTP: mail.Config{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			Subject:  getEnvOrDefault("SMTP_SUBJECT", mail.DefaultSubject),
			Security: strings.ToLower(getEnvOrDefault("SMTP_SECURITY", mail.SecurityStartTLS)),
		},

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
	cfg.SMTP.VerifyURL = cfg.VerifyURL
	cfg.SMTP.LinkTTL = cfg.VerificationTTL

	return cfg, cfg.Validate()
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: AUTH_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.MailDriver {
	case MailDriverLog:
	case MailDriverSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return errors.New("config: SMTP_HOST and SMTP_FROM are required for the smtp mail driver")
		}
	default:
		return fmt.Errorf("config: unknown MAIL_DRIVER %q", c.MailDriver)
	}

	if c.VerificationTTL <= 0 {
		return errors.New("config: AUTH_VERIFICATION_TTL must be positive")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
