package config

import (
	"os"
	"strconv"
	"time"
)

const DefaultJWTSecret = "demo-secret-key"

const (
	AuthModeDemo     = "demo"
	AuthModePassword = "password"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Session tokens
	JWTSecret string
	JWTExpiry time.Duration

	// Login
	AuthMode      string
	DemoUserID    string
	DemoUserEmail string
	DemoUserName  string

	// Listing / import
	PageSize      int
	MaxPageSize   int
	ImportMaxRows int

	// Server
	Port        string
	CORSOrigins string
	LogLevel    string

	// Error tracking
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "buyer_leads"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "buyer_leads.db"),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		AuthMode:      getEnv("AUTH_MODE", AuthModeDemo),
		DemoUserID:    getEnv("DEMO_USER_ID", "demo-user-id"),
		DemoUserEmail: getEnv("DEMO_USER_EMAIL", "demo@example.com"),
		DemoUserName:  getEnv("DEMO_USER_NAME", "Demo User"),

		PageSize:      parseInt(getEnv("PAGE_SIZE", "10"), 10),
		MaxPageSize:   parseInt(getEnv("MAX_PAGE_SIZE", "100"), 100),
		ImportMaxRows: parseInt(getEnv("IMPORT_MAX_ROWS", "200"), 200),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in fallback secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
