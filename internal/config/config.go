package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port               string
	Origin             string
	Environment        string
	Database           DatabaseConfig
	Mailer             MailerConfig
	SessionCookieName  string
	SessionExpiryHours int
	AppURL             string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// MailerConfig holds SMTP transport configuration
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	mailerConfig := MailerConfig{
		Host:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
		Port:     smtpPort,
		Username: getEnv("EMAIL_USER", ""),
		Password: getEnv("EMAIL_PASS", ""),
		From:     getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
	}

	sessionExpiryHours, err := strconv.Atoi(getEnv("SESSION_EXPIRY_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRY_HOURS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:               getEnv("PORT", "5000"),
		Origin:             getEnv("ORIGIN", "http://localhost:3000"),
		Environment:        getEnv("APP_ENV", "development"),
		Database:           dbConfig,
		Mailer:             mailerConfig,
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "clinic_session"),
		SessionExpiryHours: sessionExpiryHours,
		AppURL:             getEnv("APP_URL", "http://localhost:5000"),
	}, nil
}

// SessionTTL returns the configured session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionExpiryHours) * time.Hour
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
