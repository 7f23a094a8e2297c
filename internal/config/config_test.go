package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DEBI_TOKEN_LIVE", "tok_live")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "checkout_service", cfg.Database.Database)
	assert.False(t, cfg.Provider.SandboxMode)
	assert.Equal(t, 30, cfg.Provider.Timeout)
	assert.Equal(t, "/checkout/order-received", cfg.Checkout.ReturnURLBase)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DEBI_SANDBOX_MODE", "true")
	t.Setenv("DEBI_TOKEN_SANDBOX", "tok_sandbox")
	t.Setenv("DEBI_TIMEOUT", "10")
	t.Setenv("CHECKOUT_RETURN_URL", "https://shop.example.com/order-received")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Provider.SandboxMode)
	assert.Equal(t, 10, cfg.Provider.Timeout)
	assert.Equal(t, "https://shop.example.com/order-received", cfg.Checkout.ReturnURLBase)
}

func TestLoadFromEnv_RequiresPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DEBI_TOKEN_LIVE", "tok_live")

	_, err := LoadFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadFromEnv_RequiresActiveToken(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DEBI_TOKEN_LIVE", "")
	t.Setenv("DEBI_TOKEN_SANDBOX", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBI_TOKEN_LIVE")

	// Sandbox mode with only a live token set is still incomplete
	t.Setenv("DEBI_TOKEN_LIVE", "tok_live")
	t.Setenv("DEBI_SANDBOX_MODE", "true")

	_, err = LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBI_TOKEN_SANDBOX")
}

func TestProviderConfig_Token(t *testing.T) {
	provider := ProviderConfig{LiveToken: "tok_live", SandboxToken: "tok_sandbox"}

	assert.Equal(t, "tok_live", provider.Token())

	provider.SandboxMode = true
	assert.Equal(t, "tok_sandbox", provider.Token())
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "checkout",
		Password: "secret",
		Database: "orders",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=checkout password=secret dbname=orders sslmode=require",
		db.ConnectionString())
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("DEBI_TIMEOUT", "not-a-number")
	assert.Equal(t, 30, getEnvAsInt("DEBI_TIMEOUT", 30))
}
