package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	BaseURL  string

	// NoticeDelay controls how long the "bulk discount applied" banner
	// stays up before it clears itself.
	NoticeDelay time.Duration

	Email  EmailConfig
	Sheets SheetsConfig
}

// EmailConfig selects and configures the outbound email provider.
// Provider is "smtp" or "sendgrid"; the SMTP fields are ignored when
// SendGrid is selected and vice versa.
type EmailConfig struct {
	Provider string
	Host     string
	Port     uint16
	Username string
	Password string
	From     string
	FromName string
	// OrderTo is where order notifications land (the bakery inbox).
	OrderTo        string
	SendGridAPIKey string
}

// SheetsConfig holds the Google Sheets destinations for order rows and
// newsletter subscribers. CredentialsJSON is the raw service-account key.
type SheetsConfig struct {
	SpreadsheetID    string
	OrdersSheet      string
	SubscribersSheet string
	CredentialsJSON  string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnvInt("PORT", 3000),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		NoticeDelay: getEnvDuration("DISCOUNT_NOTICE_DELAY", 3*time.Second),
		Email: EmailConfig{
			Provider:       getEnv("EMAIL_PROVIDER", "smtp"),
			Host:           getEnv("SMTP_HOST", "localhost"),
			Port:           getEnvInt("SMTP_PORT", 1025),
			Username:       getEnv("SMTP_USERNAME", ""),
			Password:       getEnv("SMTP_PASSWORD", ""),
			From:           getEnv("EMAIL_FROM", "orders@brackenhill.local"),
			FromName:       getEnv("EMAIL_FROM_NAME", "Brackenhill Bakehouse"),
			OrderTo:        getEnv("ORDER_NOTIFICATION_EMAIL", ""),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:    getEnv("GOOGLE_SHEET_ID", ""),
			OrdersSheet:      getEnv("ORDERS_SHEET_NAME", "Orders"),
			SubscribersSheet: getEnv("SUBSCRIBERS_SHEET_NAME", "SubscribedEmailUsers"),
			CredentialsJSON:  getEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	switch cfg.Email.Provider {
	case "smtp":
		// Dev default points at a local mailcatcher, nothing to check.
	case "sendgrid":
		if cfg.Email.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY required when EMAIL_PROVIDER=sendgrid")
		}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q (expected smtp or sendgrid)", cfg.Email.Provider)
	}

	if cfg.Env == "prod" {
		if cfg.Sheets.SpreadsheetID == "" {
			return nil, fmt.Errorf("GOOGLE_SHEET_ID must be set in production")
		}
		if cfg.Sheets.CredentialsJSON == "" {
			return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY must be set in production")
		}
		if cfg.Email.OrderTo == "" {
			return nil, fmt.Errorf("ORDER_NOTIFICATION_EMAIL must be set in production")
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
		slog.Default().Warn("Invalid integer value, using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Default().Warn("Invalid duration value, using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}
