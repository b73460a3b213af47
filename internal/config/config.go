package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Payroll  PayrollConfig
	Crypto   CryptoConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	AutoMigrate bool
	CORSOrigins []string
}

// StorageConfig points at the directory holding uploaded imports and bank files.
type StorageConfig struct {
	Path    string
	BaseURL string
}

type PayrollConfig struct {
	OTMultiplier       decimal.Decimal
	PunchJitterMinutes int
	MaxSessionMinutes  int
	Workers            int
	AutoDraft          bool
}

// CryptoConfig carries the base64 secretbox key sealing bank account numbers.
type CryptoConfig struct {
	BankKey string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll_engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("APP_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_AUTO_MIGRATE: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		AutoMigrate: autoMigrate,
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Path:    getEnv("STORAGE_PATH", "./storage"),
		BaseURL: getEnv("STORAGE_BASE_URL", "/files"),
	}

	// Payroll configuration
	multiplier, err := decimal.NewFromString(getEnv("PAYROLL_OT_MULTIPLIER", "1.0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OT_MULTIPLIER: %w", err)
	}
	jitter, err := strconv.Atoi(getEnv("PAYROLL_PUNCH_JITTER_MINUTES", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PUNCH_JITTER_MINUTES: %w", err)
	}
	maxSession, err := strconv.Atoi(getEnv("MAX_SESSION_MINUTES", "960"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SESSION_MINUTES: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("PAYROLL_WORKERS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKERS: %w", err)
	}
	autoDraft, err := strconv.ParseBool(getEnv("PAYROLL_AUTO_DRAFT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_AUTO_DRAFT: %w", err)
	}

	config.Payroll = PayrollConfig{
		OTMultiplier:       multiplier,
		PunchJitterMinutes: jitter,
		MaxSessionMinutes:  maxSession,
		Workers:            workers,
		AutoDraft:          autoDraft,
	}

	config.Crypto = CryptoConfig{
		BankKey: getEnv("BANK_ACCOUNT_KEY", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Crypto.BankKey == "" {
		return fmt.Errorf("BANK_ACCOUNT_KEY is required")
	}
	if !c.Payroll.OTMultiplier.IsPositive() {
		return fmt.Errorf("PAYROLL_OT_MULTIPLIER must be positive")
	}
	if c.Payroll.PunchJitterMinutes < 0 {
		return fmt.Errorf("PAYROLL_PUNCH_JITTER_MINUTES must not be negative")
	}
	if c.Payroll.Workers < 0 {
		return fmt.Errorf("PAYROLL_WORKERS must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
