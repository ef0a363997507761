package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServiceName string
	ServerPort  string
	LogLevel    string
	SwaggerHost string
	JWTSecret   string
	ResetDB     bool

	Database        DatabaseConfig
	Redis           RedisConfig
	CustomerService CustomerServiceConfig
	Seed            SeedConfig
	OTLPEndpoint    string
}

// DatabaseConfig selects the gorm dialect and its DSN.
type DatabaseConfig struct {
	Driver      string
	MySQLDSN    string
	PostgresDSN string
}

// DSN returns the connection string for the selected driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return c.PostgresDSN
	}
	return c.MySQLDSN
}

// RedisConfig holds the customer cache connection settings.
type RedisConfig struct {
	Addr      string
	DB        int
	Password  string
	KeyPrefix string
}

// CustomerServiceConfig points at the remote customer directory.
// An empty URL makes the service answer existence checks from its own customer table.
type CustomerServiceConfig struct {
	URL     string
	Timeout time.Duration
}

// SeedConfig names the customer feed read by the seed command.
// TokenEmail, when set, makes the seed command print a bearer token for that customer.
type SeedConfig struct {
	URL        string
	File       string
	TokenEmail string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "transfer-bff"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		ResetDB:     os.Getenv("RESET_DB") == "true",
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "mysql"),
			MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/transfers?charset=utf8mb4&parseTime=True&loc=UTC"),
			PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=transfers port=5432 sslmode=disable TimeZone=UTC"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			DB:        getEnvInt("REDIS_DB", 0),
			Password:  os.Getenv("REDIS_PASSWORD"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "transferbff:"),
		},
		CustomerService: CustomerServiceConfig{
			URL:     os.Getenv("CUSTOMER_SERVICE_URL"),
			Timeout: getEnvDuration("CUSTOMER_SERVICE_TIMEOUT", 3*time.Second),
		},
		Seed: SeedConfig{
			URL:        os.Getenv("CUSTOMER_SEED_URL"),
			File:       os.Getenv("CUSTOMER_SEED_FILE"),
			TokenEmail: os.Getenv("CUSTOMER_SEED_TOKEN_EMAIL"),
		},
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
