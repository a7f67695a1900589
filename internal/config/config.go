package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Local store
	DBPath string `mapstructure:"FACDIN_DB_PATH"`

	// Remote FACDIN API
	APIBaseURL string `mapstructure:"FACDIN_API_BASE_URL"`
	APIKey     string `mapstructure:"FACDIN_API_KEY"`

	// Redis (async report delivery queue)
	RedisURL       string `mapstructure:"REDIS_URL"`
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Supervisor PIN (bcrypt hash) gating the manual payment-reversal path.
	// Generate with cmd/genhash. Empty hash disables the reversal endpoint.
	SupervisorPinHash string `mapstructure:"SUPERVISOR_PIN_HASH"`

	// SMTP — daily report delivery
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
	NombreComercio string `mapstructure:"NOMBRE_COMERCIO"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8100)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("FACDIN_DB_PATH", "facdin_local.db")
	viper.SetDefault("FACDIN_API_BASE_URL", "http://localhost:3001/api")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/facdin/reportes")
	viper.SetDefault("NOMBRE_COMERCIO", "FACDIN")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
