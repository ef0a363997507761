package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DB_DRIVER", "REDIS_DB", "CUSTOMER_SERVICE_URL",
		"CUSTOMER_SERVICE_TIMEOUT", "RESET_DB", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, cfg.Database.MySQLDSN, cfg.Database.DSN())
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Empty(t, cfg.CustomerService.URL)
	assert.Equal(t, 3*time.Second, cfg.CustomerService.Timeout)
	assert.False(t, cfg.ResetDB)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "host=db dbname=transfers")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CUSTOMER_SERVICE_URL", "http://customer-service:8080")
	t.Setenv("CUSTOMER_SERVICE_TIMEOUT", "750ms")
	t.Setenv("RESET_DB", "true")
	t.Setenv("CUSTOMER_SEED_FILE", "/seed/customers.json")
	t.Setenv("CUSTOMER_SEED_TOKEN_EMAIL", "aysel@example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "host=db dbname=transfers", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "http://customer-service:8080", cfg.CustomerService.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.CustomerService.Timeout)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, "/seed/customers.json", cfg.Seed.File)
	assert.Equal(t, "aysel@example.com", cfg.Seed.TokenEmail)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CUSTOMER_SERVICE_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 3*time.Second, cfg.CustomerService.Timeout)
}
