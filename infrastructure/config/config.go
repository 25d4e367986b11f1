package config

import (
	"fmt"
	"os"
	"strconv"
)

// Snapshot store drivers
const (
	SnapshotDriverNone     = "none"
	SnapshotDriverSQLite   = "sqlite"
	SnapshotDriverDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Snapshot persistence
	SnapshotDriver string
	SQLitePath     string
	Autosave       bool

	// AWS configuration (dynamodb driver and EventBridge)
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Rendering
	FrameRate float64

	// External thumbnail service
	ThumbnailServiceURL string

	// Dynamic limits file (optional)
	DynamicConfigPath string

	// Logging
	LogLevel string

	// Observability
	EnableMetrics bool
	EnableTracing bool
	OTLPEndpoint  string

	// Feature flags
	EnableCORS        bool
	EnableEventBridge bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		SnapshotDriver: getEnv("SNAPSHOT_DRIVER", SnapshotDriverSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "opencut.db"),
		Autosave:       getEnvBool("AUTOSAVE", true),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("DYNAMODB_TABLE", "opencut-projects"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "opencut-events"),

		FrameRate: getEnvFloat("FRAME_RATE", 30),

		ThumbnailServiceURL: getEnv("THUMBNAIL_SERVICE_URL", ""),

		DynamicConfigPath: getEnv("DYNAMIC_CONFIG_PATH", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		OTLPEndpoint:  getEnv("OTLP_ENDPOINT", "localhost:4317"),

		EnableCORS:        getEnvBool("ENABLE_CORS", true),
		EnableEventBridge: getEnvBool("ENABLE_EVENTBRIDGE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.SnapshotDriver {
	case SnapshotDriverNone, SnapshotDriverSQLite, SnapshotDriverDynamoDB:
	default:
		return fmt.Errorf("unknown snapshot driver %q", c.SnapshotDriver)
	}
	if c.SnapshotDriver == SnapshotDriverSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite snapshot driver")
	}
	if c.SnapshotDriver == SnapshotDriverDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb snapshot driver")
	}
	if c.EnableEventBridge && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when EventBridge is enabled")
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("FRAME_RATE must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
