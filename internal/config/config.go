package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret string `json:"jwt_secret"`

	// Admin allow-list: only these emails get the admin role at login
	AdminEmails []string `json:"admin_emails"`

	// Mail relay configuration
	SMTPHost   string `json:"smtp_host"`
	SMTPPort   int    `json:"smtp_port"`
	GmailUser  string `json:"gmail_user"`
	GmailPass  string `json:"gmail_pass"`
	AdminEmail string `json:"admin_email"`

	// Flavor image uploads
	UploadsDir string `json:"uploads_dir"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED], AdminEmails: %v, SMTPHost: %s, GmailUser: %s, GmailPass: [REDACTED], AdminEmail: %s, UploadsDir: %s}",
		c.Port, c.Host, c.DBDriver, c.DBName, c.DBUser, c.LogLevel, c.AdminEmails, c.SMTPHost, c.GmailUser, c.AdminEmail, c.UploadsDir)
}

// IsAdminEmail reports whether the given email is on the admin
// allow-list. The comparison is case-insensitive.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, adm := range c.AdminEmails {
		if strings.ToLower(strings.TrimSpace(adm)) == email {
			return true
		}
	}
	return false
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable has an invalid format
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:    GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBPath:      GetEnvWithDefault("DB_PATH", "kingpuff.sqlite"),
		DBHost:      GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:      GetEnvWithDefault("DB_PORT", "5432"),
		DBName:      GetEnvWithDefault("DB_NAME", "kingpuff"),
		DBUser:      GetEnvWithDefault("DB_USER", "user"),
		DBPassword:  GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:   GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:    GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:   GetEnvWithDefault("JWT_SECRET", "secret"),
		AdminEmails: splitList(GetEnvWithDefault("ADMIN_EMAILS", "")),
		SMTPHost:    GetEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    GetEnvAsType("SMTP_PORT", 587),
		GmailUser:   GetEnvWithDefault("GMAIL_USER", ""),
		GmailPass:   GetEnvWithDefault("GMAIL_PASS", ""),
		AdminEmail:  GetEnvWithDefault("ADMIN_EMAIL", ""),
		UploadsDir:  GetEnvWithDefault("UPLOADS_DIR", "uploads"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// splitList parses a comma-separated environment value into a slice,
// dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
