package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Checkout CheckoutConfig
	Logger   LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string
	Port        int
	MetricsPort int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Database string
	SSLMode  string
	Port     int
	MaxConns int32
	MinConns int32
}

// ProviderConfig holds Debi payment provider configuration.
// Sandbox and live are isolated environments with distinct bearer tokens;
// SandboxMode selects which pair is active.
type ProviderConfig struct {
	LiveToken    string
	SandboxToken string
	SandboxMode  bool
	Timeout      int // request timeout in seconds
}

// Token returns the bearer token for the active environment
func (p ProviderConfig) Token() string {
	if p.SandboxMode {
		return p.SandboxToken
	}
	return p.LiveToken
}

// CheckoutConfig holds checkout flow configuration
type CheckoutConfig struct {
	// ReturnURLBase is where the shopper is redirected after a payment
	// attempt, success or failure; the order id is appended.
	ReturnURLBase string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "checkout_service"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
		},
		Provider: ProviderConfig{
			LiveToken:    getEnv("DEBI_TOKEN_LIVE", ""),
			SandboxToken: getEnv("DEBI_TOKEN_SANDBOX", ""),
			SandboxMode:  getEnvAsBool("DEBI_SANDBOX_MODE", false),
			Timeout:      getEnvAsInt("DEBI_TIMEOUT", 30),
		},
		Checkout: CheckoutConfig{
			ReturnURLBase: getEnv("CHECKOUT_RETURN_URL", "/checkout/order-received"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Provider.Token() == "" {
		if cfg.Provider.SandboxMode {
			return nil, fmt.Errorf("DEBI_TOKEN_SANDBOX is required in sandbox mode")
		}
		return nil, fmt.Errorf("DEBI_TOKEN_LIVE is required in live mode")
	}

	return cfg, nil
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
